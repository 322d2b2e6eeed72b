package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductQuote is the catalog view of a product priced for a requested quantity.
type ProductQuote struct {
	ProductID string
	StoreID   string
	Name      string
	Image     string
	Stock     int
	UnitPrice decimal.Decimal
}

// Inventory reads and reserves catalog stock.
type Inventory interface {
	Quote(ctx context.Context, productID string, qty int) (*ProductQuote, error)
	// Decrement must be conditional on stock >= qty and return ErrInsufficientStock otherwise.
	Decrement(ctx context.Context, productID string, qty int) error
	Restore(ctx context.Context, productID string, qty int) error
}

// Customers resolves guest buyers to customer accounts.
type Customers interface {
	FindOrCreateGuest(ctx context.Context, email, name string) (string, error)
}

// RevenueLedger keeps store revenue and platform statistics in step with paid orders.
type RevenueLedger interface {
	RecordSale(ctx context.Context, storeID string, amount decimal.Decimal) error
	ReverseSale(ctx context.Context, storeID string, amount decimal.Decimal) error
}

// Notification is an in-app message addressed to a user.
type Notification struct {
	UserID  string
	Title   string
	Message string
	Type    string
	Meta    map[string]any
}

// Notifier delivers in-app notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// EventPublisher ships order events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}
