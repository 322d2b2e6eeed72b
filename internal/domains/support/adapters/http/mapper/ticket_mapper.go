package mapper

import (
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/support/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/support/ports"
)

type CreateTicketRequest struct {
	Name        string `json:"name" binding:"omitempty,max=120"`
	Email       string `json:"email" binding:"omitempty,email"`
	Subject     string `json:"subject" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	OrderNumber string `json:"orderNumber" binding:"omitempty,max=40"`
}

// ToInput fills name and email from the signed-in user when the form omits them.
func (r CreateTicketRequest) ToInput(userID, userName, userEmail string) ports.CreateTicketInput {
	input := ports.CreateTicketInput{
		UserID:      userID,
		Name:        r.Name,
		Email:       r.Email,
		Subject:     r.Subject,
		Description: r.Description,
		Category:    r.Category,
		Priority:    r.Priority,
		OrderNumber: r.OrderNumber,
	}
	if input.Name == "" {
		input.Name = userName
	}
	if input.Email == "" {
		input.Email = userEmail
	}
	return input
}

type Ticket struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromDomainTicket(t *domain.Ticket) Ticket {
	return Ticket{
		ID:          t.ID,
		Name:        t.Name,
		Email:       t.Email,
		Subject:     t.Subject,
		Description: t.Description,
		Category:    string(t.Category),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		OrderNumber: t.OrderNumber,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromDomainTickets(list []*domain.Ticket) []Ticket {
	out := make([]Ticket, 0, len(list))
	for _, t := range list {
		out = append(out, FromDomainTicket(t))
	}
	return out
}
