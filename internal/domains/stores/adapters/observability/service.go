package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	storesdomain "github.com/Apurer/go-gin-marketplace/internal/domains/stores/domain"
	storesports "github.com/Apurer/go-gin-marketplace/internal/domains/stores/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace/internal/domains/stores/adapters/observability/service"

// Service decorates the stores service with tracing, logging, and metrics.
type Service struct {
	inner   storesports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core stores service.
func New(inner storesports.Service, opts ...Option) storesports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
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
	return s
}

func (s *Service) CreateStore(ctx context.Context, ownerID, name string) (*storesdomain.Store, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.CreateStore", trace.WithAttributes(attribute.String("store.owner_id", ownerID)))
	defer span.End()

	result, err := s.inner.CreateStore(ctx, ownerID, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create store", slog.String("owner_id", ownerID))
	}
	s.logInfo(ctx, "store ready", slog.String("store_id", result.ID), slog.String("owner_id", ownerID))
	return result, nil
}

func (s *Service) ProvisionStore(ctx context.Context, ownerID, name string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.ProvisionStore", trace.WithAttributes(attribute.String("store.owner_id", ownerID)))
	defer span.End()

	id, err := s.inner.ProvisionStore(ctx, ownerID, name)
	if err != nil {
		return "", s.handleError(ctx, span, err, "failed to provision store", slog.String("owner_id", ownerID))
	}
	span.SetAttributes(attribute.String("store.id", id))
	return id, nil
}

func (s *Service) GetStore(ctx context.Context, id string) (*storesdomain.Store, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.GetStore", trace.WithAttributes(attribute.String("store.id", id)))
	defer span.End()

	result, err := s.inner.GetStore(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load store", slog.String("store_id", id))
	}
	return result, nil
}

func (s *Service) GetStoreByOwner(ctx context.Context, ownerID string) (*storesdomain.Store, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.GetStoreByOwner", trace.WithAttributes(attribute.String("store.owner_id", ownerID)))
	defer span.End()

	result, err := s.inner.GetStoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load store by owner", slog.String("owner_id", ownerID))
	}
	return result, nil
}

func (s *Service) RecordSale(ctx context.Context, storeID string, amount decimal.Decimal) error {
	ctx, span := s.tracer.Start(ctx, "StoresService.RecordSale", trace.WithAttributes(
		attribute.String("store.id", storeID),
		attribute.String("sale.amount", amount.StringFixed(2)),
	))
	defer span.End()

	if err := s.inner.RecordSale(ctx, storeID, amount); err != nil {
		return s.handleError(ctx, span, err, "failed to record sale", slog.String("store_id", storeID))
	}
	s.metrics.recordSale(ctx, "recorded")
	s.logInfo(ctx, "sale recorded", slog.String("store_id", storeID), slog.String("amount", amount.StringFixed(2)))
	return nil
}

func (s *Service) ReverseSale(ctx context.Context, storeID string, amount decimal.Decimal) error {
	ctx, span := s.tracer.Start(ctx, "StoresService.ReverseSale", trace.WithAttributes(
		attribute.String("store.id", storeID),
		attribute.String("sale.amount", amount.StringFixed(2)),
	))
	defer span.End()

	if err := s.inner.ReverseSale(ctx, storeID, amount); err != nil {
		return s.handleError(ctx, span, err, "failed to reverse sale", slog.String("store_id", storeID))
	}
	s.metrics.recordSale(ctx, "reversed")
	s.logInfo(ctx, "sale reversed", slog.String("store_id", storeID), slog.String("amount", amount.StringFixed(2)))
	return nil
}

func (s *Service) Statistics(ctx context.Context) (*storesdomain.PlatformStatistic, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.Statistics")
	defer span.End()

	result, err := s.inner.Statistics(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load platform statistics")
	}
	span.SetAttributes(attribute.Int64("statistics.total_orders", result.TotalOrders))
	return result, nil
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

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	sales metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	sales, _ := m.Int64Counter("stores.service.sales", metric.WithDescription("Sales recorded or reversed on store ledgers"))
	return serviceMetrics{sales: sales}
}

func (m serviceMetrics) recordSale(ctx context.Context, direction string) {
	if m.sales != nil {
		m.sales.Add(ctx, 1, metric.WithAttributes(attribute.String("sale.direction", direction)))
	}
}

var _ storesports.Service = (*Service)(nil)
