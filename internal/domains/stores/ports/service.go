package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/domain"
)

// Service exposes store use cases to adapters and other contexts.
type Service interface {
	CreateStore(ctx context.Context, ownerID, name string) (*domain.Store, error)
	// ProvisionStore creates the owner's store if missing and returns its id.
	ProvisionStore(ctx context.Context, ownerID, name string) (string, error)
	GetStore(ctx context.Context, id string) (*domain.Store, error)
	GetStoreByOwner(ctx context.Context, ownerID string) (*domain.Store, error)
	RecordSale(ctx context.Context, storeID string, amount decimal.Decimal) error
	ReverseSale(ctx context.Context, storeID string, amount decimal.Decimal) error
	Statistics(ctx context.Context) (*domain.PlatformStatistic, error)
}
