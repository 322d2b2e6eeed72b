package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordertypes "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core orders service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Checkout(ctx context.Context, input ordertypes.CheckoutInput) (*ordertypes.CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Checkout", checkoutAttributes(input))
	defer span.End()
	s.logInfo(ctx, "checkout started", slog.Int("lines", len(input.Items)), slog.String("payment_method", input.PaymentMethod))
	result, err := s.inner.Checkout(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "checkout failed")
	}
	s.recordPlaced(ctx, span, result)
	return result, nil
}

func (s *Service) PlaceOrders(ctx context.Context, input ordertypes.CheckoutInput) (*ordertypes.CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PlaceOrders", checkoutAttributes(input))
	defer span.End()
	result, err := s.inner.PlaceOrders(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "placing orders failed")
	}
	s.recordPlaced(ctx, span, result)
	return result, nil
}

func (s *Service) PublishOrderEvents(ctx context.Context, orders []*orderdomain.Order) error {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PublishOrderEvents", trace.WithAttributes(attribute.Int("orders.count", len(orders))))
	defer span.End()
	if err := s.inner.PublishOrderEvents(ctx, orders); err != nil {
		return s.handleError(ctx, span, err, "order events not published")
	}
	return nil
}

func (s *Service) ListCustomerOrders(ctx context.Context, userID string, status orderdomain.Status) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListCustomerOrders", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("filter.status", string(status)),
	))
	defer span.End()
	result, err := s.inner.ListCustomerOrders(ctx, userID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer orders", slog.String("user_id", userID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, userID, id string) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()
	return s.inner.GetOrder(ctx, userID, id)
}

func (s *Service) ListStoreOrders(ctx context.Context, storeID string, status orderdomain.Status) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListStoreOrders", trace.WithAttributes(
		attribute.String("store.id", storeID),
		attribute.String("filter.status", string(status)),
	))
	defer span.End()
	result, err := s.inner.ListStoreOrders(ctx, storeID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list store orders", slog.String("store_id", storeID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, storeID, orderID string, status orderdomain.Status) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateStatus", trace.WithAttributes(
		attribute.String("order.id", orderID),
		attribute.String("order.status", string(status)),
	))
	defer span.End()
	result, err := s.inner.UpdateStatus(ctx, storeID, orderID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order_id", orderID))
	}
	s.logInfo(ctx, "order status updated", slog.String("order_id", orderID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) CancelOrder(ctx context.Context, userID, orderID string) (*ordertypes.CancelResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CancelOrder", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()
	result, err := s.inner.CancelOrder(ctx, userID, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.String("order_id", orderID))
	}
	s.metrics.recordCancelled(ctx, result.Refunded)
	s.logInfo(ctx, "order cancelled", slog.String("order_id", orderID), slog.Bool("refunded", result.Refunded))
	return result, nil
}

func (s *Service) recordPlaced(ctx context.Context, span trace.Span, result *ordertypes.CheckoutResult) {
	if result == nil {
		return
	}
	span.SetAttributes(attribute.Int("orders.count", len(result.Orders)))
	for _, order := range result.Orders {
		s.metrics.recordPlaced(ctx, order.PaymentStatus)
		s.logInfo(ctx, "order placed",
			slog.String("order_id", order.ID),
			slog.String("number", order.Number),
			slog.String("store_id", order.StoreID),
			slog.String("total", order.Total.StringFixed(2)),
		)
	}
}

func checkoutAttributes(input ordertypes.CheckoutInput) trace.SpanStartEventOption {
	return trace.WithAttributes(
		attribute.Int("checkout.lines", len(input.Items)),
		attribute.Bool("checkout.guest", input.CustomerID == ""),
		attribute.Bool("idempotency.key_present", input.IdempotencyKey != ""),
	)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	ordersPlaced    metric.Int64Counter
	ordersCancelled metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of store orders created at checkout"))
	cancelled, _ := m.Int64Counter("orders.service.orders_cancelled", metric.WithDescription("Number of orders cancelled by customers"))
	return serviceMetrics{ordersPlaced: placed, ordersCancelled: cancelled}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, payment orderdomain.PaymentStatus) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("payment_status", string(payment))))
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context, refunded bool) {
	if m.ordersCancelled != nil {
		m.ordersCancelled.Add(ctx, 1, metric.WithAttributes(attribute.Bool("refunded", refunded)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ orderports.Service = (*Service)(nil)
