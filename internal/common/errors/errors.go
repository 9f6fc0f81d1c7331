// Package errors provides standardized error handling for the dialog and
// fulfillment pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnknownIntent    ErrorCode = "UNKNOWN_INTENT"
	ErrCodeMalformedEvent   ErrorCode = "MALFORMED_EVENT"
	ErrCodeEnqueueFailed    ErrorCode = "ENQUEUE_FAILED"
	ErrCodeQueueReceive     ErrorCode = "QUEUE_RECEIVE_FAILED"
	ErrCodeQueueDelete      ErrorCode = "QUEUE_DELETE_FAILED"
	ErrCodeMessageMalformed ErrorCode = "MESSAGE_MALFORMED"
	ErrCodeMissingEmail     ErrorCode = "MISSING_EMAIL_ATTRIBUTE"
	ErrCodeCandidateScan    ErrorCode = "CANDIDATE_SCAN_FAILED"
	ErrCodeRecordLookup     ErrorCode = "RECORD_LOOKUP_FAILED"
	ErrCodeDeliveryFailed   ErrorCode = "DELIVERY_FAILED"
	ErrCodeNLUUnavailable   ErrorCode = "NLU_UNAVAILABLE"
	ErrCodeIngestFetch      ErrorCode = "INGEST_FETCH_FAILED"
	ErrCodeIngestWrite      ErrorCode = "INGEST_WRITE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// IsRetryable reports whether err wraps a StandardError marked retryable.
// The fulfillment consumer uses this to decide between abandoning a message
// to transport redrive and failing hard.
func IsRetryable(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// Code extracts the error code from err, or empty if it is not standardized.
func Code(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUnknownIntentError marks a caller contract violation: routing has no
// fallback branch, the set of intents is closed and known in advance.
func NewUnknownIntentError(intentName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownIntent,
		Message:   "Unrecognized intent name",
		Details:   fmt.Sprintf("intent: %s", intentName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedEventError creates a non-retryable dialog turn decode error.
func NewMalformedEventError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedEvent,
		Message:   "Dialog turn event could not be decoded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEnqueueFailedError creates a retryable producer-side queue error.
func NewEnqueueFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnqueueFailed,
		Message:   "Failed to enqueue fulfillment request",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueueReceiveError creates a retryable consumer-side receive error.
func NewQueueReceiveError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueueReceive,
		Message:   "Failed to receive message from queue",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueueDeleteError creates a retryable delete error. The message was
// already delivered; a failed delete means a possible duplicate, never a loss.
func NewQueueDeleteError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueueDelete,
		Message:   "Failed to delete message after delivery",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMessageMalformedError creates a non-retryable contract violation for a
// queue message that fails schema validation.
func NewMessageMalformedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMessageMalformed,
		Message:   "Queue message does not match the fulfillment contract",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingEmailError creates a non-retryable hard stop for a message that
// lacks the contact address; the message is abandoned to transport redrive.
func NewMissingEmailError(messageID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingEmail,
		Message:   "Email attribute is missing from the queue message",
		Details:   fmt.Sprintf("messageId: %s", messageID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCandidateScanError creates a retryable candidate index error.
func NewCandidateScanError(cuisine string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateScan,
		Message:   "Candidate scan failed",
		Details:   fmt.Sprintf("cuisine: %s, error: %s", cuisine, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordLookupError creates a retryable record store error.
func NewRecordLookupError(id string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordLookup,
		Message:   "Restaurant record lookup failed",
		Details:   fmt.Sprintf("id: %s, error: %s", id, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDeliveryFailedError creates a retryable delivery error. The consumer
// must not delete the message when this is returned.
func NewDeliveryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDeliveryFailed,
		Message:   "Result delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNLUUnavailableError creates a retryable relay error.
func NewNLUUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNLUUnavailable,
		Message:   "NLU runtime is unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIngestFetchError creates a retryable directory fetch error.
func NewIngestFetchError(category string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIngestFetch,
		Message:   "Directory listing fetch failed",
		Details:   fmt.Sprintf("category: %s, error: %s", category, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIngestWriteError creates a retryable store write error.
func NewIngestWriteError(id string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIngestWrite,
		Message:   "Restaurant record write failed",
		Details:   fmt.Sprintf("id: %s, error: %s", id, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
