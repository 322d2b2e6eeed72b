package ports

import (
	"context"

	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"
)

// CartStore keeps one cart per owner. Load returns (nil, nil) when the owner has no cart.
type CartStore interface {
	Load(ctx context.Context, ownerID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, ownerID string) error
}
