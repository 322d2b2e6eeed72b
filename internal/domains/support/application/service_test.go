package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-marketplace/internal/domains/support/adapters/memory"
	"github.com/Apurer/go-gin-marketplace/internal/domains/support/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/support/ports"
)

type sentMail struct{ to, subject, text, html string }

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, text, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, text, html})
	return nil
}

func TestCreateGuestTicketSendsConfirmation(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(memory.NewRepository(), WithMailer(mailer))

	ticket, err := svc.CreateTicket(context.Background(), ports.CreateTicketInput{
		Name:        "Ana",
		Email:       "ana@example.com",
		Subject:     "Missing item",
		Description: "One pen missing",
		OrderNumber: "ORD-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, domain.CategoryOther, ticket.Category)
	assert.Equal(t, domain.PriorityMedium, ticket.Priority)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, ticket.ID)
	assert.Contains(t, mailer.sent[0].text, ticket.ID)
}

func TestCreateTicketIgnoresMailerFailure(t *testing.T) {
	svc := NewService(memory.NewRepository(), WithMailer(&fakeMailer{err: errors.New("smtp down")}))

	ticket, err := svc.CreateTicket(context.Background(), ports.CreateTicketInput{
		UserID: "u1", Email: "u1@example.com", Subject: "s", Description: "d", Category: "payment",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryPayment, ticket.Category)
}

func TestCreateTicketValidation(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.CreateTicket(ctx, ports.CreateTicketInput{Subject: "s", Description: "d"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrEmailRequired)

	_, err = svc.CreateTicket(ctx, ports.CreateTicketInput{UserID: "u1", Subject: "s", Description: "d", Priority: "ASAP"})
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
}

func TestListAndGetAreScopedToUser(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	svc := NewService(memory.NewRepository(), WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	first, err := svc.CreateTicket(ctx, ports.CreateTicketInput{UserID: "u1", Subject: "first", Description: "d"})
	require.NoError(t, err)
	second, err := svc.CreateTicket(ctx, ports.CreateTicketInput{UserID: "u1", Subject: "second", Description: "d"})
	require.NoError(t, err)
	_, err = svc.CreateTicket(ctx, ports.CreateTicketInput{UserID: "u2", Subject: "other", Description: "d"})
	require.NoError(t, err)

	list, err := svc.ListMyTickets(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	got, err := svc.GetTicket(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Subject)

	_, err = svc.GetTicket(ctx, "u2", first.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = svc.ListMyTickets(ctx, "")
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}
