package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
)

// Service stores in-app notifications and dispatches emails.
type Service struct {
	repo   ports.Repository
	sender ports.EmailSender
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, sender ports.EmailSender, opts ...Option) *Service {
	s := &Service{repo: repo, sender: sender, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Notify(ctx context.Context, input ports.NotifyInput) (*domain.Notification, error) {
	n, err := domain.NewNotification(uuid.NewString(), input.UserID, input.Title, input.Message, input.Type, input.Meta, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, n)
}

func (s *Service) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAuthenticationRequired
	}
	return s.repo.ListByUser(ctx, userID, unreadOnly)
}

// MarkRead flags a notification as read. Notifications of other users are not found.
func (s *Service) MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAuthenticationRequired
	}
	n, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, ports.ErrNotFound
	}
	if n.Read {
		return n, nil
	}
	n.MarkRead()
	return s.repo.Save(ctx, n)
}

func (s *Service) SendEmail(ctx context.Context, email domain.Email) (*ports.SentEmail, error) {
	if err := email.Validate(); err != nil {
		return nil, mapError(err)
	}
	id, err := s.sender.Send(ctx, email)
	if err != nil {
		return nil, err
	}
	return &ports.SentEmail{ID: id, Simulated: strings.HasPrefix(id, ports.SimulatedEmailPrefix)}, nil
}

var _ ports.Service = (*Service)(nil)
