package email

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
)

func TestConfigDeliver(t *testing.T) {
	assert.True(t, Config{Environment: "production"}.Deliver())
	assert.True(t, Config{Environment: "development", SendReal: true}.Deliver())
	assert.False(t, Config{Environment: "development"}.Deliver())
}

func TestNewSenderSelection(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.IsType(t, &SimulatedSender{}, NewSender(Config{Environment: "development"}, logger))
	assert.IsType(t, &SimulatedSender{}, NewSender(Config{Environment: "production"}, logger))
	assert.IsType(t, &SMTPSender{}, NewSender(Config{Environment: "production", Host: "smtp.example.com"}, logger))
}

func TestSimulatedSenderID(t *testing.T) {
	sender := NewSimulatedSender(slog.New(slog.NewTextHandler(io.Discard, nil)))

	id, err := sender.Send(context.Background(), domain.Email{To: "a@example.com", Text: "hi"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "simulated-"))
}

func newTestSMTPSender(t *testing.T, cfg Config) (*SMTPSender, *[]*mail.Msg) {
	t.Helper()
	sender, err := NewSMTPSender(cfg)
	require.NoError(t, err)
	var sent []*mail.Msg
	sender.deliver = func(_ context.Context, msg *mail.Msg) error {
		sent = append(sent, msg)
		return nil
	}
	return sender, &sent
}

func TestSMTPSenderComposesMultipart(t *testing.T) {
	sender, sent := newTestSMTPSender(t, Config{Host: "smtp.example.com", Username: "bot@example.com", Password: "secret", From: "shop@example.com"})

	id, err := sender.Send(context.Background(), domain.Email{
		To:      "ana@example.com",
		Subject: "Ticket reçu",
		Text:    "line one\nline two",
		HTML:    "<p>hello</p>",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, "@smtp.example.com>"))
	require.Len(t, *sent, 1)

	msg := (*sent)[0]
	assert.Equal(t, []string{"<ana@example.com>"}, msg.GetToString())
	from, err := msg.GetSender(false)
	require.NoError(t, err)
	assert.Equal(t, "shop@example.com", from)

	var raw bytes.Buffer
	_, err = msg.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "multipart/alternative")
	assert.Contains(t, raw.String(), "line one")
	assert.Contains(t, raw.String(), "<p>hello</p>")
	assert.Contains(t, raw.String(), "Message-ID: "+id)
}

func TestSMTPSenderRejectsBadRecipient(t *testing.T) {
	sender, sent := newTestSMTPSender(t, Config{Host: "smtp.example.com", From: "shop@example.com"})

	_, err := sender.Send(context.Background(), domain.Email{To: "not an address", Text: "hi"})
	require.Error(t, err)
	assert.Empty(t, *sent)
}

func TestSMTPSenderWrapsErrors(t *testing.T) {
	sender, err := NewSMTPSender(Config{Host: "smtp.example.com", Port: 2525, From: "shop@example.com"})
	require.NoError(t, err)
	sender.deliver = func(context.Context, *mail.Msg) error { return errors.New("refused") }

	_, err = sender.Send(context.Background(), domain.Email{To: "a@example.com", Text: "hi"})
	assert.EqualError(t, err, "smtp send: refused")
}
