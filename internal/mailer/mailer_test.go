package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"reviewhub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func TestNew_SelectsTransport(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	m, err := New(&config.Config{MailTransport: "log"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)

	m, err = New(&config.Config{MailTransport: "smtp", SMTPHost: "localhost", SMTPPort: 25}, logger)
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	m, err = New(&config.Config{MailTransport: "amqp", AMQPURL: "amqp://localhost", MailQueue: "q"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &QueueMailer{}, m)

	_, err = New(&config.Config{MailTransport: "carrier-pigeon"}, logger)
	assert.Error(t, err)
}

func TestLogMailer_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewTextHandler(&buf, nil)))

	err := m.Send(context.Background(), Message{To: "a@x.com", Subject: "hi", Body: "code"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "to=a@x.com")
	assert.Contains(t, buf.String(), "subject=hi")
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := NewSMTPMailer("localhost", 25, "", "", 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, Message{To: "a@x.com"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandleDelivery(t *testing.T) {
	next := &recordingMailer{}
	body, _ := json.Marshal(Message{From: "f@x.com", To: "a@x.com", Subject: "s", Body: "b"})

	require.NoError(t, handleDelivery(context.Background(), body, next))
	require.Len(t, next.sent, 1)
	assert.Equal(t, "a@x.com", next.sent[0].To)

	assert.Error(t, handleDelivery(context.Background(), []byte("not json"), next))
	assert.Error(t, handleDelivery(context.Background(), []byte(`{"subject":"x"}`), next))

	next.err = errors.New("smtp down")
	assert.ErrorContains(t, handleDelivery(context.Background(), body, next), "smtp down")
}
