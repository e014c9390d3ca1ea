// Package mailer delivers outgoing email. Transports: SMTP, a RabbitMQ queue
// drained by cmd/mail-worker, or the log for local development.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"reviewhub/internal/config"
)

// Message is one outgoing email.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer accepts a message for delivery.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the transport selected by MAIL_TRANSPORT.
func New(cfg *config.Config, logger *slog.Logger) (Mailer, error) {
	switch cfg.MailTransport {
	case "smtp":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailTimeout), nil
	case "amqp":
		return NewQueueMailer(cfg.AMQPURL, cfg.MailQueue), nil
	case "log", "":
		return NewLogMailer(logger), nil
	}
	return nil, fmt.Errorf("unknown mail transport %q", cfg.MailTransport)
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "mail",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
