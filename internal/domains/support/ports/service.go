package ports

import (
	"context"

	"github.com/Apurer/go-gin-marketplace/internal/domains/support/domain"
)

// CreateTicketInput carries a contact form submission. UserID is empty for guests.
type CreateTicketInput struct {
	UserID      string
	Name        string
	Email       string
	Subject     string
	Description string
	Category    string
	Priority    string
	OrderNumber string
}

type Service interface {
	CreateTicket(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error)
	ListMyTickets(ctx context.Context, userID string) ([]*domain.Ticket, error)
	GetTicket(ctx context.Context, userID, id string) (*domain.Ticket, error)
}
