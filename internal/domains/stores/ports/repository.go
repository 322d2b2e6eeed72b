package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/domain"
)

var ErrNotFound = errors.New("store not found")

// Repository persists stores and the platform statistic. Sale updates are applied atomically.
type Repository interface {
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Store, error)
	RecordSale(ctx context.Context, storeID string, amount decimal.Decimal) error
	ReverseSale(ctx context.Context, storeID string, amount decimal.Decimal) error
	Statistics(ctx context.Context) (*domain.PlatformStatistic, error)
}
