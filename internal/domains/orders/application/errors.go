package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrIncompleteOrder is returned when items, shipping address or total are missing.
	ErrIncompleteOrder = errors.New("incomplete order data")
	// ErrOrderIDRequired is returned when a cancellation omits the order id.
	ErrOrderIDRequired = errors.New("order id is required")
	// ErrAuthenticationRequired is returned when a customer operation has no session user.
	ErrAuthenticationRequired = errors.New("authentication required")
)

// InsufficientStockError reports the available and requested quantity for a product.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", name, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ports.ErrInsufficientStock
}

func productNotFound(id string) error {
	return fmt.Errorf("%w: %s", ports.ErrProductNotFound, id)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyStore) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrNotCancellable) ||
		errors.Is(err, domain.ErrOrderCancelled) ||
		errors.Is(err, domain.ErrEmptyProductLine) ||
		errors.Is(err, domain.ErrMissingAddress) ||
		errors.Is(err, ErrIncompleteOrder) ||
		errors.Is(err, ErrOrderIDRequired) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
