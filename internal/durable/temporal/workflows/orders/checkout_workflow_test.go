package orders

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	ordertypes "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-marketplace/internal/durable/temporal/activities/orders"
)

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	acts := &orderactivities.Activities{}
	env.RegisterActivityWithOptions(acts.PlaceOrders, activity.RegisterOptions{Name: orderactivities.PlaceOrdersActivityName})
	env.RegisterActivityWithOptions(acts.PublishOrderEvents, activity.RegisterOptions{Name: orderactivities.PublishOrderEventsActivityName})
	return env
}

func sampleInput() CheckoutWorkflowInput {
	total := decimal.NewFromInt(5)
	return CheckoutWorkflowInput{Command: ordertypes.CheckoutInput{
		Items:           []ordertypes.CheckoutLine{{ProductID: "p-1", Quantity: 1}},
		ShippingAddress: orderdomain.ShippingAddress{City: "Paris"},
		Total:           &total,
		PaymentMethod:   "card",
	}, TraceID: "trace-1"}
}

func TestCheckoutWorkflow_PlacesThenPublishes(t *testing.T) {
	env := newEnv(t)
	placed := &ordertypes.CheckoutResult{Orders: []*orderdomain.Order{{ID: "o-1", Number: "ORD-1-1", StoreID: "s-1"}}}
	env.OnActivity(orderactivities.PlaceOrdersActivityName, mock.Anything, mock.Anything).Return(placed, nil).Once()
	env.OnActivity(orderactivities.PublishOrderEventsActivityName, mock.Anything, mock.Anything).Return(nil).Once()

	env.ExecuteWorkflow(CheckoutWorkflow, sampleInput())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result ordertypes.CheckoutResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Len(t, result.Orders, 1)
	require.Equal(t, "o-1", result.Orders[0].ID)
	env.AssertExpectations(t)
}

func TestCheckoutWorkflow_PublishFailureDoesNotFailCheckout(t *testing.T) {
	env := newEnv(t)
	placed := &ordertypes.CheckoutResult{Orders: []*orderdomain.Order{{ID: "o-1"}}}
	env.OnActivity(orderactivities.PlaceOrdersActivityName, mock.Anything, mock.Anything).Return(placed, nil)
	env.OnActivity(orderactivities.PublishOrderEventsActivityName, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	env.ExecuteWorkflow(CheckoutWorkflow, sampleInput())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
}

func TestCheckoutWorkflow_StockErrorIsNotRetried(t *testing.T) {
	env := newEnv(t)
	env.OnActivity(orderactivities.PlaceOrdersActivityName, mock.Anything, mock.Anything).
		Return(nil, temporal.NewNonRetryableApplicationError("insufficient stock", orderactivities.ErrTypeInsufficientStock, nil)).
		Once()

	env.ExecuteWorkflow(CheckoutWorkflow, sampleInput())

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, orderactivities.ErrTypeInsufficientStock, appErr.Type())
	env.AssertExpectations(t)
}

