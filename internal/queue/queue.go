// internal/queue/queue.go

// Package queue abstracts the at-least-once fulfillment transport. Both
// drivers share the deliver-then-delete contract: a message is removed only
// after the consumer explicitly acknowledges it, so a crash mid-processing
// redelivers rather than loses.
package queue

import "context"

// Attribute is one typed message attribute, carried alongside the body.
type Attribute struct {
	DataType    string
	StringValue string
}

// Message is one in-flight queue message. ReceiptHandle identifies this
// delivery for the subsequent Delete; its shape is driver-specific.
type Message struct {
	ID            string
	Body          string
	Attributes    map[string]Attribute
	ReceiptHandle string
}

// Queue is the transport contract.
//
// Receive returns at most one message, or (nil, nil) when the queue is
// empty. Delete acknowledges a prior delivery; deleting the same receipt
// twice is harmless.
type Queue interface {
	Send(ctx context.Context, body string, attributes map[string]Attribute) (string, error)
	Receive(ctx context.Context) (*Message, error)
	Delete(ctx context.Context, receiptHandle string) error
}
