package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
)

// ErrNotFound is returned when an order is missing or not visible to the caller.
var ErrNotFound = errors.New("order not found")

// Repository persists orders together with their items.
type Repository interface {
	// SaveAll inserts the orders of one checkout atomically.
	SaveAll(ctx context.Context, orders []*domain.Order) error
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, userID string, status domain.Status) ([]*domain.Order, error)
	ListByStore(ctx context.Context, storeID string, status domain.Status) ([]*domain.Order, error)
}
