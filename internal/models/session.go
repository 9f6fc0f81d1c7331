// internal/models/session.go
package models

// DialogSession carries everything the next turn needs; the dialog state
// machine holds no in-process memory across turns.
type DialogSession struct {
	SessionID  string            `json:"sessionId"`
	IntentName string            `json:"intentName"`
	State      string            `json:"state"` // InProgress | Fulfilled
	Attributes map[string]string `json:"attributes,omitempty"`
}
