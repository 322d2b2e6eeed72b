package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/go-gin-marketplace/internal/durable/temporal/activities/orders"
)

// RunCheckoutSequence places the orders and then publishes their events.
// A publish failure is logged and does not fail the checkout.
func RunCheckoutSequence(ctx workflow.Context, input ordertypes.CheckoutInput) (*ordertypes.CheckoutResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout sequence started", "lines", len(input.Items))
	placeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.ErrTypeInvalidCheckout,
				orderactivities.ErrTypeInsufficientStock,
				orderactivities.ErrTypeProductNotFound,
			},
		},
	}
	publishOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var result ordertypes.CheckoutResult
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, placeOptions), orderactivities.PlaceOrdersActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("checkout sequence failed", "error", err)
		return nil, err
	}
	logger.Info("checkout sequence placed orders", "orders", len(result.Orders))

	if len(result.Orders) > 0 {
		if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, publishOptions), orderactivities.PublishOrderEventsActivityName, result.Orders).Get(ctx, nil); err != nil {
			logger.Warn("checkout sequence could not publish events", "error", err)
		}
	}
	return &result, nil
}
