package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-marketplace/internal/domains/support/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/support/ports"
)

var _ ports.Repository = (*Repository)(nil)

type Repository struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
}

func NewRepository() *Repository {
	return &Repository{tickets: map[string]domain.Ticket{}}
}

func (r *Repository) Save(_ context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	if ticket == nil {
		return nil, errors.New("cannot save nil ticket")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[ticket.ID] = *ticket
	out := *ticket
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &t, nil
}

func (r *Repository) ListByUser(_ context.Context, userID string) ([]*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Ticket, 0)
	for _, t := range r.tickets {
		if t.UserID != userID {
			continue
		}
		t := t
		list = append(list, &t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}
