package application

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-marketplace/internal/domains/support/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/support/ports"
)

// Service implements the support ticket use cases.
type Service struct {
	repo   ports.Repository
	mailer ports.Mailer
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithMailer(mailer ports.Mailer) Option {
	return func(s *Service) { s.mailer = mailer }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateTicket opens a ticket and emails a confirmation. A failed email does
// not fail the request.
func (s *Service) CreateTicket(ctx context.Context, input ports.CreateTicketInput) (*domain.Ticket, error) {
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, mapError(err)
	}
	priority, err := domain.ParsePriority(input.Priority)
	if err != nil {
		return nil, mapError(err)
	}
	ticket, err := domain.NewTicket(uuid.NewString(), input.UserID, input.Name, input.Email,
		input.Subject, input.Description, category, priority, input.OrderNumber, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, ticket)
	if err != nil {
		return nil, err
	}
	s.sendConfirmation(ctx, saved)
	return saved, nil
}

func (s *Service) ListMyTickets(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAuthenticationRequired
	}
	return s.repo.ListByUser(ctx, userID)
}

// GetTicket hides tickets of other users behind ErrNotFound.
func (s *Service) GetTicket(ctx context.Context, userID, id string) (*domain.Ticket, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAuthenticationRequired
	}
	ticket, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, ports.ErrNotFound
	}
	return ticket, nil
}

func (s *Service) sendConfirmation(ctx context.Context, ticket *domain.Ticket) {
	if s.mailer == nil || ticket.Email == "" {
		return
	}
	subject := fmt.Sprintf("Ticket %s: %s", ticket.ID, ticket.Subject)
	text := fmt.Sprintf("Bonjour %s,\n\nNous avons bien reçu votre demande \"%s\".\nNuméro de ticket : %s\nNotre équipe vous répondra dans les meilleurs délais.\n",
		displayName(ticket), ticket.Subject, ticket.ID)
	body := fmt.Sprintf("<p>Bonjour %s,</p><p>Nous avons bien reçu votre demande <strong>%s</strong>.</p><p>Numéro de ticket : <code>%s</code></p>",
		html.EscapeString(displayName(ticket)), html.EscapeString(ticket.Subject), ticket.ID)
	if err := s.mailer.Send(ctx, ticket.Email, subject, text, body); err != nil {
		s.logger.WarnContext(ctx, "ticket confirmation email failed", slog.String("ticket_id", ticket.ID), slog.String("error", err.Error()))
	}
}

func displayName(t *domain.Ticket) string {
	if t.Name != "" {
		return t.Name
	}
	return t.Email
}

var _ ports.Service = (*Service)(nil)
