package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogtypes "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/application/types"
	catalogdomain "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) CreateProduct(ctx context.Context, input catalogtypes.CreateProductInput) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct", trace.WithAttributes(
		attribute.String("store.id", input.StoreID),
		attribute.Bool("idempotency.key_present", input.IdempotencyKey != ""),
	))
	defer span.End()
	s.logInfo(ctx, "creating product", slog.String("store_id", input.StoreID))
	result, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("store_id", input.StoreID))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "product created", slog.String("product_id", result.Entity.ID))
	return result, nil
}

func (s *Service) UpdateProduct(ctx context.Context, input catalogtypes.UpdateProductInput) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateProduct", trace.WithAttributes(attribute.String("product.id", input.ID)))
	defer span.End()
	result, err := s.inner.UpdateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.String("product_id", input.ID))
	}
	s.logInfo(ctx, "product updated", slog.String("product_id", input.ID))
	return result, nil
}

func (s *Service) DeleteProduct(ctx context.Context, storeID, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()
	if err := s.inner.DeleteProduct(ctx, storeID, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.String("product_id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()
	return s.inner.GetProduct(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, filter catalogports.ProductFilter) ([]*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts", trace.WithAttributes(
		attribute.String("filter.category_id", filter.CategoryID),
		attribute.String("filter.store_id", filter.StoreID),
	))
	defer span.End()
	result, err := s.inner.ListProducts(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) ListSellerProducts(ctx context.Context, storeID string) ([]*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListSellerProducts", trace.WithAttributes(attribute.String("store.id", storeID)))
	defer span.End()
	result, err := s.inner.ListSellerProducts(ctx, storeID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list seller products", slog.String("store_id", storeID))
	}
	return result, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*catalogdomain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListCategories")
	defer span.End()
	return s.inner.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*catalogdomain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateCategory")
	defer span.End()
	result, err := s.inner.CreateCategory(ctx, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create category", slog.String("name", name))
	}
	s.logInfo(ctx, "category created", slog.String("category_id", result.ID), slog.String("slug", result.Slug))
	return result, nil
}

func (s *Service) RequestImageUpload(ctx context.Context, input catalogtypes.ImageUploadInput) (*catalogports.PresignedUpload, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.RequestImageUpload", trace.WithAttributes(attribute.String("product.id", input.ProductID)))
	defer span.End()
	result, err := s.inner.RequestImageUpload(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to presign image upload", slog.String("product_id", input.ProductID))
	}
	return result, nil
}

func (s *Service) AttachImage(ctx context.Context, storeID, productID, key string) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AttachImage", trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()
	result, err := s.inner.AttachImage(ctx, storeID, productID, key)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to attach image", slog.String("product_id", productID))
	}
	return result, nil
}

func (s *Service) DecrementStock(ctx context.Context, productID string, qty int) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DecrementStock", trace.WithAttributes(
		attribute.String("product.id", productID),
		attribute.Int("quantity", qty),
	))
	defer span.End()
	if err := s.inner.DecrementStock(ctx, productID, qty); err != nil {
		if errors.Is(err, catalogdomain.ErrInsufficientStock) {
			s.metrics.recordStockRejected(ctx)
		}
		return s.handleError(ctx, span, err, "stock decrement rejected", slog.String("product_id", productID), slog.Int("quantity", qty))
	}
	return nil
}

func (s *Service) RestoreStock(ctx context.Context, productID string, qty int) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.RestoreStock", trace.WithAttributes(
		attribute.String("product.id", productID),
		attribute.Int("quantity", qty),
	))
	defer span.End()
	if err := s.inner.RestoreStock(ctx, productID, qty); err != nil {
		return s.handleError(ctx, span, err, "stock restore failed", slog.String("product_id", productID), slog.Int("quantity", qty))
	}
	s.logInfo(ctx, "stock restored", slog.String("product_id", productID), slog.Int("quantity", qty))
	return nil
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
	productsCreated metric.Int64Counter
	productsDeleted metric.Int64Counter
	stockRejected   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("catalog.service.products_created", metric.WithDescription("Number of products created"))
	deleted, _ := m.Int64Counter("catalog.service.products_deleted", metric.WithDescription("Number of products deleted"))
	rejected, _ := m.Int64Counter("catalog.service.stock_rejections", metric.WithDescription("Stock decrements refused for insufficient stock"))
	return serviceMetrics{productsCreated: created, productsDeleted: deleted, stockRejected: rejected}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.productsCreated != nil {
		m.productsCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.productsDeleted != nil {
		m.productsDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordStockRejected(ctx context.Context) {
	if m.stockRejected != nil {
		m.stockRejected.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ catalogports.Service = (*Service)(nil)
