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

	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner      ports.Service
	tracer     trace.Tracer
	logger     *slog.Logger
	itemsAdded metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m != nil {
			s.itemsAdded, _ = m.Int64Counter("cart.service.items_added", metric.WithDescription("Cart lines added or merged"))
		}
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Get(ctx context.Context, ownerID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Get")
	defer span.End()
	cart, err := s.inner.Get(ctx, ownerID)
	return cart, s.fail(ctx, span, err, "failed to load cart")
}

func (s *Service) AddProduct(ctx context.Context, ownerID, productID string, qty int) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddProduct", trace.WithAttributes(
		attribute.String("product.id", productID),
		attribute.Int("quantity", qty),
	))
	defer span.End()
	cart, err := s.inner.AddProduct(ctx, ownerID, productID, qty)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to add product to cart", slog.String("product_id", productID))
	}
	s.recordAdded(ctx, domain.SourceProduct, 1)
	return cart, nil
}

func (s *Service) AddSchoolList(ctx context.Context, ownerID, listID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddSchoolList", trace.WithAttributes(attribute.String("liste.id", listID)))
	defer span.End()
	cart, err := s.inner.AddSchoolList(ctx, ownerID, listID)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to add school list to cart", slog.String("liste_id", listID))
	}
	s.recordAdded(ctx, domain.SourceSchoolList, 1)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "school list added to cart", slog.String("liste_id", listID), slog.Int("cart_lines", len(cart.Items)))
	return cart, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, ownerID, itemID string, qty int) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity", trace.WithAttributes(
		attribute.String("item.id", itemID),
		attribute.Int("quantity", qty),
	))
	defer span.End()
	cart, err := s.inner.UpdateQuantity(ctx, ownerID, itemID, qty)
	return cart, s.fail(ctx, span, err, "failed to update cart quantity", slog.String("item_id", itemID))
}

func (s *Service) RemoveItem(ctx context.Context, ownerID, itemID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem", trace.WithAttributes(attribute.String("item.id", itemID)))
	defer span.End()
	cart, err := s.inner.RemoveItem(ctx, ownerID, itemID)
	return cart, s.fail(ctx, span, err, "failed to remove cart item", slog.String("item_id", itemID))
}

func (s *Service) Clear(ctx context.Context, ownerID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear")
	defer span.End()
	cart, err := s.inner.Clear(ctx, ownerID)
	return cart, s.fail(ctx, span, err, "failed to clear cart")
}

func (s *Service) recordAdded(ctx context.Context, source domain.Source, n int64) {
	if s.itemsAdded != nil {
		s.itemsAdded.Add(ctx, n, metric.WithAttributes(attribute.String("source", string(source))))
	}
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.LogAttrs(ctx, slog.LevelError, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

var _ ports.Service = (*Service)(nil)
