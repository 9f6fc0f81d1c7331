// internal/delivery/delivery.go

// Package delivery hands composed recommendation messages to a channel
// provider. The fulfillment consumer treats every provider the same: an
// error means the queue message must not be acknowledged.
package delivery

import "context"

// Sender delivers one message to one recipient. textBody and htmlBody carry
// the same content in both renderings; providers that cannot carry HTML use
// textBody alone.
type Sender interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}
