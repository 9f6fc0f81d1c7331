// internal/delivery/smtp.go
package delivery

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"dining-concierge/internal/common/logger"
)

// SMTPConfig holds the SMTP provider settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
	From     string
}

// SMTPSender delivers email through a plain SMTP relay. Useful for local
// stacks where SES is not reachable.
type SMTPSender struct {
	config SMTPConfig
	logger logger.Logger
}

func NewSMTPSender(cfg SMTPConfig, log logger.Logger) *SMTPSender {
	return &SMTPSender{config: cfg, logger: log}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if !isValidEmail(to) {
		return fmt.Errorf("invalid recipient address: %s", to)
	}
	if !isValidEmail(s.config.From) {
		return fmt.Errorf("invalid sender address: %s", s.config.From)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	message := s.buildMessage(to, subject, htmlBody)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.Username != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	var err error
	if s.config.UseTLS {
		err = s.sendWithTLS(addr, auth, to, []byte(message))
	} else {
		err = smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(message))
	}
	if err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}

	s.logger.Info("email delivered via SMTP", map[string]interface{}{
		"to":   to,
		"host": s.config.Host,
	})
	return nil
}

func (s *SMTPSender) buildMessage(to, subject, body string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("From: %s\r\n", s.config.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", to))
	builder.WriteString(fmt.Sprintf("Reply-To: %s\r\n", s.config.From))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	return builder.String()
}

func (s *SMTPSender) sendWithTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: s.config.Host}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(s.config.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}
