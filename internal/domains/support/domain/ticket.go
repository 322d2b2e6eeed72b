package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

type Category string

const (
	CategoryOrder     Category = "ORDER"
	CategoryPayment   Category = "PAYMENT"
	CategoryShipping  Category = "SHIPPING"
	CategoryAccount   Category = "ACCOUNT"
	CategoryTechnical Category = "TECHNICAL"
	CategoryProduct   Category = "PRODUCT"
	CategoryOther     Category = "OTHER"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
)

var (
	ErrEmptySubject     = errors.New("subject is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrEmailRequired    = errors.New("email is required for guest tickets")
	ErrInvalidEmail     = errors.New("email is invalid")
	ErrInvalidCategory  = errors.New("unknown ticket category")
	ErrInvalidPriority  = errors.New("unknown ticket priority")
)

// ParseCategory defaults an empty value to OTHER.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	switch c {
	case "":
		return CategoryOther, nil
	case CategoryOrder, CategoryPayment, CategoryShipping, CategoryAccount, CategoryTechnical, CategoryProduct, CategoryOther:
		return c, nil
	}
	return "", ErrInvalidCategory
}

// ParsePriority defaults an empty value to MEDIUM.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(raw)))
	switch p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, nil
	}
	return "", ErrInvalidPriority
}

// Ticket is a support request; UserID is empty for guests.
type Ticket struct {
	ID          string
	UserID      string
	Name        string
	Email       string
	Subject     string
	Description string
	Category    Category
	Priority    Priority
	Status      Status
	OrderNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTicket validates and opens a ticket.
func NewTicket(id, userID, name, email, subject, description string, category Category, priority Priority, orderNumber string, now time.Time) (*Ticket, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, ErrEmptySubject
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" && strings.TrimSpace(userID) == "" {
		return nil, ErrEmailRequired
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, ErrInvalidEmail
		}
	}
	if category == "" {
		category = CategoryOther
	}
	if priority == "" {
		priority = PriorityMedium
	}
	return &Ticket{
		ID:          id,
		UserID:      strings.TrimSpace(userID),
		Name:        strings.TrimSpace(name),
		Email:       email,
		Subject:     subject,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      StatusOpen,
		OrderNumber: strings.TrimSpace(orderNumber),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (t *Ticket) IsGuest() bool {
	return t.UserID == ""
}
