// internal/fulfillment/consumer.go
package fulfillment

import (
	"context"
	"strconv"
	"strings"
	"time"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/common/observability"
	"dining-concierge/internal/common/validation"
	"dining-concierge/internal/delivery"
	"dining-concierge/internal/models"
	"dining-concierge/internal/queue"
	"dining-concierge/internal/store"
)

// maxSuggestions caps how many restaurants one recommendation carries.
const maxSuggestions = 10

// Consumer drains the fulfillment queue. Messages are deleted only after
// delivery succeeds; any failure before that leaves the message for
// redelivery, so duplicate recommendations are possible and accepted.
type Consumer struct {
	queue      queue.Queue
	candidates store.CandidateIndex
	records    store.RestaurantStore
	sender     delivery.Sender
	obs        *observability.Observability
	logger     logger.Logger
}

func NewConsumer(q queue.Queue, candidates store.CandidateIndex, records store.RestaurantStore,
	sender delivery.Sender, obs *observability.Observability, log logger.Logger) *Consumer {
	return &Consumer{
		queue:      q,
		candidates: candidates,
		records:    records,
		sender:     sender,
		obs:        obs,
		logger:     log,
	}
}

// ProcessOne receives and processes at most one message. It returns false
// when the queue was empty. A non-nil error with processed=true means the
// message was received but not acknowledged; it will be redelivered.
func (c *Consumer) ProcessOne(ctx context.Context) (bool, error) {
	msg, err := c.queue.Receive(ctx)
	if err != nil {
		return false, errors.NewQueueReceiveError(err)
	}
	if msg == nil {
		return false, nil
	}

	start := time.Now()
	err = c.process(ctx, msg)
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.FulfillmentProcessed.WithLabelValues(status).Inc()
	metrics.FulfillmentDuration.Observe(time.Since(start).Seconds())
	c.obs.RecordMessageProcessed(ctx, status)
	c.obs.RecordMessageDuration(ctx, time.Since(start), status)

	return true, err
}

func (c *Consumer) process(ctx context.Context, msg *queue.Message) error {
	log := c.logger.WithFields(map[string]interface{}{"message_id": msg.ID})

	attrs := make(map[string]interface{}, len(msg.Attributes))
	for name, a := range msg.Attributes {
		attrs[name] = a.StringValue
	}
	if err := validation.ValidateFulfillmentAttributes(attrs); err != nil {
		// Contract violation: abandon the message to transport redrive
		// rather than deleting data that might still be inspected there.
		log.WithError(err).Error("queue message failed contract validation", nil)
		return errors.NewMessageMalformedError(err.Error())
	}

	email := stringAttr(msg, models.AttrEmail)
	if strings.TrimSpace(email) == "" {
		log.Error("queue message has no email attribute, abandoning", nil)
		return errors.NewMissingEmailError(msg.ID)
	}

	people, _ := strconv.Atoi(stringAttr(msg, models.AttrNumberOfPeople))
	req := models.FulfillmentRequest{
		Cuisine:     stringAttr(msg, models.AttrCuisine),
		Location:    stringAttr(msg, models.AttrLocation),
		DiningDate:  stringAttr(msg, models.AttrDiningDate),
		DiningTime:  stringAttr(msg, models.AttrDiningTime),
		PeopleCount: people,
		Email:       email,
	}

	cuisine := strings.ToLower(req.Cuisine)
	ids, err := c.candidates.SearchByCuisine(ctx, cuisine, maxSuggestions)
	if err != nil {
		return errors.NewCandidateScanError(cuisine, err)
	}

	restaurants := make([]models.Restaurant, 0, len(ids))
	for _, id := range ids {
		r, err := c.records.GetByID(ctx, id)
		if err != nil {
			return errors.NewRecordLookupError(id, err)
		}
		if r == nil {
			// index ahead of the record store; skip, don't fail
			log.Warn("candidate has no record, skipping", map[string]interface{}{"restaurant_id": id})
			continue
		}
		restaurants = append(restaurants, *r)
	}

	composed := Compose(req, restaurants)
	if err := c.sender.Send(ctx, req.Email, composed.Subject, composed.TextBody, composed.HTMLBody); err != nil {
		log.WithError(err).Error("recommendation delivery failed, message retained", nil)
		return errors.NewDeliveryFailedError(err)
	}
	metrics.RecommendationsDelivered.Inc()

	if err := c.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
		// Delivered but not acknowledged: the recipient may get a duplicate,
		// which the at-least-once contract allows.
		log.WithError(err).Warn("delete after delivery failed", nil)
		return errors.NewQueueDeleteError(err)
	}

	log.Info("recommendation delivered", map[string]interface{}{
		"email":       req.Email,
		"cuisine":     cuisine,
		"suggestions": len(restaurants),
	})
	return nil
}

func stringAttr(msg *queue.Message, name string) string {
	return msg.Attributes[name].StringValue
}
