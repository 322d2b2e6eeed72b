package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps stores and the platform statistic in memory.
type Repository struct {
	mu     sync.RWMutex
	stores map[string]*domain.Store
	stats  *domain.PlatformStatistic
}

func NewRepository() *Repository {
	return &Repository{stores: map[string]*domain.Store{}, stats: domain.NewPlatformStatistic()}
}

func (r *Repository) Create(_ context.Context, store *domain.Store) (*domain.Store, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *store
	now := time.Now()
	clone.CreatedAt, clone.UpdatedAt = now, now
	r.stores[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	store, ok := r.stores[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *store
	return &clone, nil
}

func (r *Repository) GetByOwner(_ context.Context, ownerID string) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, store := range r.stores {
		if store.OwnerID == ownerID {
			clone := *store
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) RecordSale(_ context.Context, storeID string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[storeID]
	if !ok {
		return ports.ErrNotFound
	}
	if err := store.RecordSale(amount); err != nil {
		return err
	}
	store.UpdatedAt = time.Now()
	r.stats.RecordSale(amount)
	return nil
}

func (r *Repository) ReverseSale(_ context.Context, storeID string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[storeID]
	if !ok {
		return ports.ErrNotFound
	}
	if err := store.ReverseSale(amount); err != nil {
		return err
	}
	store.UpdatedAt = time.Now()
	r.stats.ReverseSale(amount)
	return nil
}

func (r *Repository) Statistics(_ context.Context) (*domain.PlatformStatistic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := *r.stats
	return &clone, nil
}
