package orders

import (
	"context"
	"errors"
	"strings"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

const (
	// PlaceOrdersActivityName reserves stock and persists the per-store orders.
	PlaceOrdersActivityName = "orders.activities.PlaceOrders"
	// PublishOrderEventsActivityName emits OrderPlaced events for persisted orders.
	PublishOrderEventsActivityName = "orders.activities.PublishOrderEvents"
)

// Error types marked non-retryable; the checkout outcome will not change on retry.
const (
	ErrTypeInvalidCheckout   = "InvalidCheckout"
	ErrTypeInsufficientStock = "InsufficientStock"
	ErrTypeProductNotFound   = "ProductNotFound"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrders runs the transactional part of checkout. Orders are keyed by the
// workflow id so a retried attempt returns what an earlier attempt stored.
func (a *Activities) PlaceOrders(ctx context.Context, input ordertypes.CheckoutInput) (*ordertypes.CheckoutResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place orders activity not initialized")
		return nil, errors.New("place orders activity not initialized")
	}
	if input.PlacementID == "" {
		input.PlacementID = activity.GetInfo(ctx).WorkflowExecution.ID
	}
	logger.Info("PlaceOrders activity started", "lines", len(input.Items), "attempt", activity.GetInfo(ctx).Attempt)
	result, err := a.service.PlaceOrders(ctx, input)
	if err != nil {
		logger.Error("PlaceOrders activity failed", "error", err)
		return nil, classify(err)
	}
	logger.Info("PlaceOrders activity completed", "orders", len(result.Orders))
	return result, nil
}

// PublishOrderEvents publishes the events for orders created by PlaceOrders.
func (a *Activities) PublishOrderEvents(ctx context.Context, orders []*orderdomain.Order) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("publish order events activity not initialized")
		return errors.New("publish order events activity not initialized")
	}
	logger.Info("PublishOrderEvents activity started", "orders", len(orders))
	if err := a.service.PublishOrderEvents(ctx, orders); err != nil {
		logger.Error("PublishOrderEvents activity failed", "error", err)
		return err
	}
	logger.Info("PublishOrderEvents activity completed")
	return nil
}

func classify(err error) error {
	var stockErr *orderapp.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInsufficientStock, err, *stockErr)
	case errors.Is(err, orderports.ErrProductNotFound):
		productID := strings.TrimPrefix(err.Error(), orderports.ErrProductNotFound.Error()+": ")
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeProductNotFound, err, productID)
	case errors.Is(err, orderapp.ErrInvalidInput):
		reason := strings.TrimPrefix(err.Error(), orderapp.ErrInvalidInput.Error()+": ")
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidCheckout, err, reason)
	default:
		return err
	}
}
