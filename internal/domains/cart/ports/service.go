package ports

import (
	"context"

	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"
)

// Service exposes cart use cases. Every method returns the cart after the change.
type Service interface {
	Get(ctx context.Context, ownerID string) (*domain.Cart, error)
	AddProduct(ctx context.Context, ownerID, productID string, qty int) (*domain.Cart, error)
	AddSchoolList(ctx context.Context, ownerID, listID string) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, ownerID, itemID string, qty int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, ownerID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, ownerID string) (*domain.Cart, error)
}
