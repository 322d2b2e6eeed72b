package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-marketplace/internal/domains/support/domain"
)

var ErrNotFound = errors.New("ticket not found")

type Repository interface {
	Save(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	// ListByUser returns the user's tickets newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Ticket, error)
}

// Mailer delivers the ticket confirmation email.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}
