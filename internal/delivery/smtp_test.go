// internal/delivery/smtp_test.go
package delivery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"dining-concierge/internal/common/logger"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"valid address", "diner@example.com", true},
		{"valid with padding", "  diner@example.com  ", true},
		{"missing at sign", "dinerexample.com", false},
		{"missing local part", "@example.com", false},
		{"missing domain", "diner@", false},
		{"domain without dot", "diner@localhost", false},
		{"two at signs", "a@b@example.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isValidEmail(tt.email))
		})
	}
}

func TestSMTPSender_BuildMessage(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "concierge@example.com",
	}, logger.NewNoOpLogger())

	msg := s.buildMessage("diner@example.com", "Dining Concierge restaurant suggestions", "<p>hello</p>")

	assert.Contains(t, msg, "From: concierge@example.com\r\n")
	assert.Contains(t, msg, "To: diner@example.com\r\n")
	assert.Contains(t, msg, "Subject: Dining Concierge restaurant suggestions\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.Contains(t, msg, "\r\n\r\n<p>hello</p>")
}

func TestSMTPSender_RejectsBadRecipient(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "concierge@example.com",
	}, logger.NewNoOpLogger())

	err := s.Send(context.Background(), "not-an-address", "subject", "text", "html")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient address")
}
