// internal/dialog/responses.go
package dialog

import "dining-concierge/internal/models"

const plainText = "PlainText"

// ElicitSlot re-asks for one slot. The offending slot is cleared in a copy
// of the event's slot map so the runtime re-elicits instead of replaying the
// rejected value.
func ElicitSlot(event models.TurnEvent, slot, message string) models.TurnResponse {
	slots := make(map[string]*models.SlotInput, len(event.SessionState.Intent.Slots))
	for name, v := range event.SessionState.Intent.Slots {
		if name == slot {
			slots[name] = nil
			continue
		}
		slots[name] = v
	}

	return models.TurnResponse{
		SessionState: models.ResponseSessionState{
			SessionAttributes: event.SessionState.SessionAttributes,
			DialogAction: models.DialogAction{
				Type:         models.ActionElicitSlot,
				SlotToElicit: slot,
			},
			Intent: &models.IntentState{
				Name:  event.SessionState.Intent.Name,
				State: models.StateInProgress,
				Slots: slots,
			},
		},
		Messages: []models.Message{{ContentType: plainText, Content: message}},
	}
}

// Delegate hands control back to the NLU runtime for the next turn.
func Delegate(event models.TurnEvent) models.TurnResponse {
	return models.TurnResponse{
		SessionState: models.ResponseSessionState{
			SessionAttributes: event.SessionState.SessionAttributes,
			DialogAction:      models.DialogAction{Type: models.ActionDelegate},
			Intent: &models.IntentState{
				Name:  event.SessionState.Intent.Name,
				State: models.StateInProgress,
				Slots: event.SessionState.Intent.Slots,
			},
		},
	}
}

// Close ends the intent in the given terminal state with one reply message.
func Close(event models.TurnEvent, state, message string) models.TurnResponse {
	return models.TurnResponse{
		SessionState: models.ResponseSessionState{
			SessionAttributes: event.SessionState.SessionAttributes,
			DialogAction:      models.DialogAction{Type: models.ActionClose},
			Intent: &models.IntentState{
				Name:  event.SessionState.Intent.Name,
				State: state,
				Slots: event.SessionState.Intent.Slots,
			},
		},
		Messages: []models.Message{{ContentType: plainText, Content: message}},
	}
}
