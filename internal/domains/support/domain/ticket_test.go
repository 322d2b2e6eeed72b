package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketDefaults(t *testing.T) {
	now := time.Now().UTC()
	ticket, err := NewTicket("t1", "", " Ana ", "Ana@Example.com", " Late order ", "Where is it?", "", "", "ORD-1", now)
	require.NoError(t, err)

	assert.Equal(t, CategoryOther, ticket.Category)
	assert.Equal(t, PriorityMedium, ticket.Priority)
	assert.Equal(t, StatusOpen, ticket.Status)
	assert.Equal(t, "ana@example.com", ticket.Email)
	assert.Equal(t, "Late order", ticket.Subject)
	assert.True(t, ticket.IsGuest())
}

func TestNewTicketValidation(t *testing.T) {
	now := time.Now()
	cases := map[string]struct {
		userID, email, subject, description string
		want                                error
	}{
		"missing subject":     {userID: "u1", subject: " ", description: "d", want: ErrEmptySubject},
		"missing description": {userID: "u1", subject: "s", want: ErrEmptyDescription},
		"guest without email": {subject: "s", description: "d", want: ErrEmailRequired},
		"bad email":           {email: "nope", subject: "s", description: "d", want: ErrInvalidEmail},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewTicket("t1", tc.userID, "", tc.email, tc.subject, tc.description, "", "", "", now)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSignedInTicketNeedsNoEmail(t *testing.T) {
	ticket, err := NewTicket("t1", "u1", "", "", "s", "d", CategoryPayment, PriorityHigh, "", time.Now())
	require.NoError(t, err)
	assert.False(t, ticket.IsGuest())
	assert.Equal(t, CategoryPayment, ticket.Category)
}

func TestParseEnums(t *testing.T) {
	c, err := ParseCategory("shipping")
	require.NoError(t, err)
	assert.Equal(t, CategoryShipping, c)

	_, err = ParseCategory("refund")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	p, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	_, err = ParsePriority("critical")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}
