// internal/fulfillment/producer.go

// Package fulfillment is the asynchronous half of the concierge: the
// producer snapshots a closed dialog into a queue message, the consumer
// turns that message into a delivered recommendation list.
package fulfillment

import (
	"context"
	"strconv"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
	"dining-concierge/internal/queue"
)

// messageBody is a fixed marker; all meaningful data rides in the typed
// attributes so the consumer never parses free text.
const messageBody = "User Input"

const attrTypeString = "String"
const attrTypeNumber = "Number"

// Producer enqueues fulfillment requests onto the queue transport.
type Producer struct {
	queue  queue.Queue
	logger logger.Logger
}

func NewProducer(q queue.Queue, log logger.Logger) *Producer {
	return &Producer{queue: q, logger: log}
}

// Enqueue publishes one request as a six-attribute message.
func (p *Producer) Enqueue(ctx context.Context, req models.FulfillmentRequest) error {
	attrs := map[string]queue.Attribute{
		models.AttrCuisine:        {DataType: attrTypeString, StringValue: req.Cuisine},
		models.AttrLocation:       {DataType: attrTypeString, StringValue: req.Location},
		models.AttrDiningDate:     {DataType: attrTypeString, StringValue: req.DiningDate},
		models.AttrDiningTime:     {DataType: attrTypeString, StringValue: req.DiningTime},
		models.AttrNumberOfPeople: {DataType: attrTypeNumber, StringValue: strconv.Itoa(req.PeopleCount)},
		models.AttrEmail:          {DataType: attrTypeString, StringValue: req.Email},
	}

	id, err := p.queue.Send(ctx, messageBody, attrs)
	if err != nil {
		return errors.NewEnqueueFailedError(err)
	}

	metrics.FulfillmentEnqueued.Inc()
	p.logger.Info("fulfillment request enqueued", map[string]interface{}{
		"message_id": id,
		"cuisine":    req.Cuisine,
		"location":   req.Location,
	})
	return nil
}
