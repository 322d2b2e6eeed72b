package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/ports"
)

var _ ports.CartStore = (*Store)(nil)

// Store keeps carts in process memory. Carts never expire.
type Store struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewStore() *Store {
	return &Store{carts: map[string]domain.Cart{}}
}

func (s *Store) Load(_ context.Context, ownerID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[ownerID]
	if !ok {
		return nil, nil
	}
	out := clone(c)
	return &out, nil
}

func (s *Store) Save(_ context.Context, cart *domain.Cart) error {
	if cart == nil {
		return errors.New("cannot save nil cart")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.OwnerID] = clone(*cart)
	return nil
}

func (s *Store) Delete(_ context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, ownerID)
	return nil
}

func clone(c domain.Cart) domain.Cart {
	c.Items = append([]domain.Item{}, c.Items...)
	return c
}
