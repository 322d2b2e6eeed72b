package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	n, err := NewNotification("n1", "u1", " Commande annulée ", "msg", "", nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, TypeSystem, n.Type)
	assert.Equal(t, "Commande annulée", n.Title)
	assert.NotNil(t, n.Meta)
	assert.False(t, n.Read)

	n.MarkRead()
	assert.True(t, n.Read)
}

func TestNewNotificationValidation(t *testing.T) {
	_, err := NewNotification("n1", "", "t", "", TypeSystem, nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptyUser)
	_, err = NewNotification("n1", "u1", " ", "", TypeSystem, nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptyTitle)
	_, err = NewNotification("n1", "u1", "t", "", Type("PROMO"), nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestEmailValidate(t *testing.T) {
	assert.ErrorIs(t, Email{Text: "hi"}.Validate(), ErrEmptyRecipient)
	assert.ErrorIs(t, Email{To: "a@b.c"}.Validate(), ErrEmptyBody)
	assert.NoError(t, Email{To: "a@b.c", HTML: "<p>hi</p>"}.Validate())
}
