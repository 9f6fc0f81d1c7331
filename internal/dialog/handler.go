// internal/dialog/handler.go
package dialog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/dialog/validation"
	"dining-concierge/internal/models"
)

// Reply texts for the simple intents and the fulfillment confirmation.
const (
	greetingFormat = "Hello Good %s, How can I help you?"
	thanksReply    = "Thank you for choosing Dining Concierge Chatbot."
	confirmFormat  = "You're all set. Expect my suggestions shortly at %s! Have a good day!"
)

// FulfillmentProducer enqueues one fulfillment request. Implemented by the
// fulfillment producer over the queue transport.
type FulfillmentProducer interface {
	Enqueue(ctx context.Context, req models.FulfillmentRequest) error
}

// Handler is the dialog state machine. It is stateless across turns; all
// dialog state travels in the turn event.
type Handler struct {
	producer FulfillmentProducer
	logger   logger.Logger
	nowFn    func() time.Time
}

func NewHandler(producer FulfillmentProducer, log logger.Logger) *Handler {
	return &Handler{
		producer: producer,
		logger:   log,
		nowFn:    time.Now,
	}
}

// WithClock overrides the handler's clock. Test hook.
func (h *Handler) WithClock(nowFn func() time.Time) *Handler {
	h.nowFn = nowFn
	return h
}

// HandleTurn routes one dialog turn by intent name. An unknown intent is a
// caller contract violation, not a conversational fallback.
func (h *Handler) HandleTurn(ctx context.Context, event models.TurnEvent) (models.TurnResponse, error) {
	intent := event.SessionState.Intent.Name

	var (
		resp models.TurnResponse
		err  error
	)
	switch intent {
	case models.GreetingIntent:
		resp = h.handleGreeting(event)
	case models.ThankYouIntent:
		resp = h.handleThanks(event)
	case models.DiningSuggestionsIntent:
		resp, err = h.handleDiningSuggestions(ctx, event)
	default:
		h.logger.Warn("unrecognized intent", map[string]interface{}{
			"intent":     intent,
			"session_id": event.SessionID,
		})
		return models.TurnResponse{}, errors.NewUnknownIntentError(intent)
	}
	if err != nil {
		return models.TurnResponse{}, err
	}

	metrics.DialogTurnsTotal.WithLabelValues(intent, resp.SessionState.DialogAction.Type).Inc()
	return resp, nil
}

// handleGreeting closes immediately with a time-of-day greeting. Boundaries:
// before 12:00 is morning, 12:00 through 17:59 is afternoon, the rest is
// evening.
func (h *Handler) handleGreeting(event models.TurnEvent) models.TurnResponse {
	hour := h.nowFn().Hour()
	part := "evening"
	switch {
	case hour < 12:
		part = "morning"
	case hour < 18:
		part = "afternoon"
	}
	return Close(event, models.StateFulfilled, fmt.Sprintf(greetingFormat, part))
}

func (h *Handler) handleThanks(event models.TurnEvent) models.TurnResponse {
	return Close(event, models.StateFulfilled, thanksReply)
}

// handleDiningSuggestions runs the slot-filling machine. The validation pass
// re-checks every populated slot each turn and either re-elicits the first
// failure or delegates; the final pass snapshots the slots into a
// fulfillment request, enqueues it exactly once and closes the intent.
func (h *Handler) handleDiningSuggestions(ctx context.Context, event models.TurnEvent) (models.TurnResponse, error) {
	slots := SlotsFromIntent(event.SessionState.Intent)

	if event.InvocationSource == models.SourceDialogCodeHook {
		if res := validation.Evaluate(slots.ForValidation(), h.nowFn()); res != nil {
			metrics.SlotValidationFailures.WithLabelValues(res.Slot).Inc()
			h.logger.Info("slot validation failed", map[string]interface{}{
				"session_id": event.SessionID,
				"slot":       res.Slot,
			})
			return ElicitSlot(event, res.Slot, res.Message), nil
		}
		return Delegate(event), nil
	}

	people, err := strconv.Atoi(deref(slots.PeopleCount))
	if err != nil {
		return models.TurnResponse{}, errors.NewMalformedEventError(
			fmt.Errorf("people count %q is not numeric at submission: %w", deref(slots.PeopleCount), err))
	}

	req := models.FulfillmentRequest{
		Cuisine:     deref(slots.Cuisine),
		Location:    deref(slots.Location),
		DiningDate:  deref(slots.DiningDate),
		DiningTime:  deref(slots.DiningTime),
		PeopleCount: people,
		Email:       deref(slots.Email),
	}

	if err := h.producer.Enqueue(ctx, req); err != nil {
		h.logger.WithError(err).Error("failed to enqueue fulfillment request", map[string]interface{}{
			"session_id": event.SessionID,
		})
		return models.TurnResponse{}, errors.NewEnqueueFailedError(err)
	}

	h.logger.Info("fulfillment request enqueued", map[string]interface{}{
		"session_id": event.SessionID,
		"cuisine":    req.Cuisine,
		"location":   req.Location,
	})
	return Close(event, models.StateFulfilled, fmt.Sprintf(confirmFormat, req.Email)), nil
}
