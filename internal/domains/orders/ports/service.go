package ports

import (
	"context"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters (inbound/driving port).
type Service interface {
	// Checkout places the orders and publishes their events.
	Checkout(ctx context.Context, input types.CheckoutInput) (*types.CheckoutResult, error)
	// PlaceOrders runs the checkout without publishing events.
	PlaceOrders(ctx context.Context, input types.CheckoutInput) (*types.CheckoutResult, error)
	PublishOrderEvents(ctx context.Context, orders []*domain.Order) error
	ListCustomerOrders(ctx context.Context, userID string, status domain.Status) ([]*domain.Order, error)
	GetOrder(ctx context.Context, userID, id string) (*domain.Order, error)
	ListStoreOrders(ctx context.Context, storeID string, status domain.Status) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, storeID, orderID string, status domain.Status) (*domain.Order, error)
	CancelOrder(ctx context.Context, userID, orderID string) (*types.CancelResult, error)
}

// CheckoutOrchestrator runs checkout either durably or inline.
type CheckoutOrchestrator interface {
	Checkout(ctx context.Context, input types.CheckoutInput) (*types.CheckoutResult, error)
}
