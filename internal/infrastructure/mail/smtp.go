// Package mail provides NotificationSink implementations for outbound email.
// Delivery is best-effort by contract: callers persist token state first and
// only log a failed send.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSink delivers notifications through a plain SMTP relay.
type SMTPSink struct {
	addr string
	from string
}

// NewSMTPSink returns a sink relaying through addr (host:port) with the given
// envelope sender.
func NewSMTPSink(addr, from string) *SMTPSink {
	return &SMTPSink{addr: addr, from: from}
}

// Send relays a single plain-text message. The context is not threaded into
// net/smtp (it has no context API); the relay's own timeouts apply.
func (s *SMTPSink) Send(_ context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
