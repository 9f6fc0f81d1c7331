// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DialogTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_turns_total",
			Help: "Total number of dialog turns processed, by intent and resulting action",
		},
		[]string{"intent", "action"},
	)

	SlotValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_slot_validation_failures_total",
			Help: "Total number of slot validation failures, by slot",
		},
		[]string{"slot"},
	)

	FulfillmentEnqueued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fulfillment_requests_enqueued_total",
			Help: "Total number of fulfillment requests enqueued",
		},
	)

	FulfillmentProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_messages_processed_total",
			Help: "Total number of queue messages processed by the fulfillment worker, by status",
		},
		[]string{"status"},
	)

	FulfillmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "fulfillment_message_duration_seconds",
			Help: "Duration of fulfillment message processing in seconds",
		},
	)

	RecommendationsDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_delivered_total",
			Help: "Total number of recommendation messages handed to the delivery channel",
		},
	)
)
