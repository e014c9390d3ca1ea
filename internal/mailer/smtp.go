package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-mail/mail/v2"
)

// SMTPMailer sends each message over a fresh SMTP session.
type SMTPMailer struct {
	dialer *mail.Dialer
}

func NewSMTPMailer(host string, port int, username, password string, timeout time.Duration) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = timeout
	return &SMTPMailer{dialer: dialer}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	email := mail.NewMessage()
	email.SetHeader("From", msg.From)
	email.SetHeader("To", msg.To)
	email.SetHeader("Subject", msg.Subject)
	email.SetBody("text/plain", msg.Body)

	if err := m.dialer.DialAndSend(email); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}
