package memory

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

type Repository struct {
	mu    sync.RWMutex
	items map[string]domain.Notification
}

func NewRepository() *Repository {
	return &Repository{items: map[string]domain.Notification{}}
}

func (r *Repository) Save(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if n == nil {
		return nil, errors.New("cannot save nil notification")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[n.ID] = clone(*n)
	out := clone(*n)
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := clone(n)
	return &out, nil
}

func (r *Repository) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Notification, 0)
	for _, n := range r.items {
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		out := clone(n)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func clone(n domain.Notification) domain.Notification {
	n.Meta = maps.Clone(n.Meta)
	return n
}
