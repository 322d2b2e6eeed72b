package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

func (r *Repository) SaveAll(_ context.Context, orders []*domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range orders {
		if order == nil {
			return errors.New("order is nil")
		}
		if _, exists := r.orders[order.ID]; exists {
			return errors.New("order already exists")
		}
	}
	for _, order := range orders {
		r.orders[order.ID] = clone(order)
	}
	return nil
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := clone(order)
	if existing, ok := r.orders[order.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now().UTC()
	}
	r.orders[order.ID] = stored
	return clone(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(order), nil
}

func (r *Repository) ListByCustomer(_ context.Context, userID string, status domain.Status) ([]*domain.Order, error) {
	return r.list(func(o *domain.Order) bool {
		return o.UserID == userID && (status == "" || o.Status == status)
	}), nil
}

func (r *Repository) ListByStore(_ context.Context, storeID string, status domain.Status) ([]*domain.Order, error) {
	return r.list(func(o *domain.Order) bool {
		return o.StoreID == storeID && (status == "" || o.Status == status)
	}), nil
}

func (r *Repository) list(match func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if match(order) {
			list = append(list, clone(order))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Number > list[j].Number
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func clone(order *domain.Order) *domain.Order {
	out := *order
	out.Items = append([]domain.OrderItem{}, order.Items...)
	return &out
}
