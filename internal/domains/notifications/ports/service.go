package ports

import (
	"context"

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
)

type NotifyInput struct {
	UserID  string
	Title   string
	Message string
	Type    domain.Type
	Meta    map[string]any
}

// SentEmail reports the delivery id; simulated deliveries use "simulated-<unix millis>".
type SentEmail struct {
	ID        string
	Simulated bool
}

type Service interface {
	Notify(ctx context.Context, input NotifyInput) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error)
	SendEmail(ctx context.Context, email domain.Email) (*SentEmail, error)
}

// SimulatedEmailPrefix marks ids of emails that were logged instead of delivered.
const SimulatedEmailPrefix = "simulated-"
