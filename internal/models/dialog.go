// internal/models/dialog.go
package models

// Intent names form a closed set; routing has no fallback branch.
const (
	GreetingIntent          = "GreetingIntent"
	DiningSuggestionsIntent = "DiningSuggestionsIntent"
	ThankYouIntent          = "ThankYouIntent"
)

// Invocation sources distinguish a mid-dialog validation pass from the
// final submission pass.
const (
	SourceDialogCodeHook      = "DialogCodeHook"
	SourceFulfillmentCodeHook = "FulfillmentCodeHook"
)

// Dialog action types returned to the NLU runtime.
const (
	ActionElicitSlot = "ElicitSlot"
	ActionDelegate   = "Delegate"
	ActionClose      = "Close"
)

// Intent states.
const (
	StateInProgress = "InProgress"
	StateFulfilled  = "Fulfilled"
)

// TurnEvent is one dialog turn as delivered by the NLU runtime webhook.
type TurnEvent struct {
	SessionID        string            `json:"sessionId"`
	InvocationSource string            `json:"invocationSource"`
	SessionState     SessionStateInput `json:"sessionState"`
}

type SessionStateInput struct {
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
	Intent            IntentInput       `json:"intent"`
}

type IntentInput struct {
	Name  string                `json:"name"`
	Slots map[string]*SlotInput `json:"slots,omitempty"`
}

// SlotInput is nil for an explicitly cleared slot; a populated slot exposes
// the NLU's interpreted value.
type SlotInput struct {
	Value *SlotValue `json:"value,omitempty"`
}

type SlotValue struct {
	InterpretedValue string `json:"interpretedValue"`
}

// InterpretedValue returns the slot's interpreted value, or empty when the
// slot is absent or cleared.
func (s *SlotInput) InterpretedValue() string {
	if s == nil || s.Value == nil {
		return ""
	}
	return s.Value.InterpretedValue
}

// TurnResponse is the webhook reply: one of ElicitSlot, Delegate or Close.
type TurnResponse struct {
	SessionState ResponseSessionState `json:"sessionState"`
	Messages     []Message            `json:"messages,omitempty"`
}

type ResponseSessionState struct {
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
	DialogAction      DialogAction      `json:"dialogAction"`
	Intent            *IntentState      `json:"intent,omitempty"`
}

type DialogAction struct {
	Type         string `json:"type"`
	SlotToElicit string `json:"slotToElicit,omitempty"`
}

type IntentState struct {
	Name  string                `json:"name"`
	State string                `json:"state"`
	Slots map[string]*SlotInput `json:"slots,omitempty"`
}

type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}
