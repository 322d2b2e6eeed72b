package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Save(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	// ListByUser returns notifications newest first.
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error)
}

// EmailSender delivers an email and returns the provider message id.
type EmailSender interface {
	Send(ctx context.Context, email domain.Email) (string, error)
}
