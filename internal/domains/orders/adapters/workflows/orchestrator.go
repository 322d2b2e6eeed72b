package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-marketplace/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-marketplace/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.CheckoutOrchestrator = (*TemporalCheckout)(nil)
	_ ports.CheckoutOrchestrator = (*InlineCheckout)(nil)
)

// TemporalCheckout starts checkout workflows on a Temporal cluster.
type TemporalCheckout struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckout wires a Temporal client into the orchestrator.
func NewTemporalCheckout(c client.Client) *TemporalCheckout {
	return &TemporalCheckout{client: c, taskQueue: orderworkflows.CheckoutTaskQueue}
}

// Checkout runs the checkout workflow and waits for its result. A repeated
// idempotency key returns the result of the first run.
func (o *TemporalCheckout) Checkout(ctx context.Context, input ordertypes.CheckoutInput) (*ordertypes.CheckoutResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildCheckoutWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	if strings.TrimSpace(input.IdempotencyKey) != "" {
		options.WorkflowIDReusePolicy = enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.CheckoutWorkflowName,
		orderworkflows.CheckoutWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var result ordertypes.CheckoutResult
			if err := existingRun.Get(ctx, &result); err != nil {
				return nil, fromWorkflowError(err)
			}
			return &result, nil
		}
		return nil, err
	}
	var result ordertypes.CheckoutResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, fromWorkflowError(err)
	}
	return &result, nil
}

// InlineCheckout executes checkout directly without Temporal, used in dev and tests.
type InlineCheckout struct {
	service ports.Service
}

// NewInlineCheckout wraps the orders service for synchronous execution.
func NewInlineCheckout(service ports.Service) *InlineCheckout {
	return &InlineCheckout{service: service}
}

// Checkout delegates to the application service without durable orchestration.
func (o *InlineCheckout) Checkout(ctx context.Context, input ordertypes.CheckoutInput) (*ordertypes.CheckoutResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout not configured")
	}
	return o.service.Checkout(ctx, input)
}

// fromWorkflowError turns non-retryable activity failures back into the
// errors the application layer would have returned inline.
func fromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrTypeInsufficientStock:
		var detail orderapp.InsufficientStockError
		if appErr.HasDetails() && appErr.Details(&detail) == nil {
			return &detail
		}
		return fmt.Errorf("%w: %s", ports.ErrInsufficientStock, appErr.Message())
	case orderactivities.ErrTypeProductNotFound:
		var productID string
		if appErr.HasDetails() && appErr.Details(&productID) == nil {
			return fmt.Errorf("%w: %s", ports.ErrProductNotFound, productID)
		}
		return ports.ErrProductNotFound
	case orderactivities.ErrTypeInvalidCheckout:
		var reason string
		if appErr.HasDetails() && appErr.Details(&reason) == nil {
			if reason == orderapp.ErrIncompleteOrder.Error() {
				return fmt.Errorf("%w: %w", orderapp.ErrInvalidInput, orderapp.ErrIncompleteOrder)
			}
			return fmt.Errorf("%w: %s", orderapp.ErrInvalidInput, reason)
		}
		return orderapp.ErrInvalidInput
	default:
		return err
	}
}

func buildCheckoutWorkflowID(input ordertypes.CheckoutInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("checkout-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("checkout-%d-%s", time.Now().UnixNano(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
