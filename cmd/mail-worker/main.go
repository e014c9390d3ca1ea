package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
)

// mail-worker drains the outgoing mail queue and delivers over SMTP.
func main() {
	cfg, err := config.LoadToolConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	logger := cfg.NewLogger(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	smtp := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailTimeout)

	logger.Info("mail worker started", "queue", cfg.MailQueue, "smtp_host", cfg.SMTPHost)
	if err := mailer.Consume(ctx, cfg.AMQPURL, cfg.MailQueue, smtp, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mail worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("mail worker stopped")
}
