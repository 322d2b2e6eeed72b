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

	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/adapters/observability/service"

// Service decorates the school list service with tracing, logging, and metrics.
type Service struct {
	inner     ports.Service
	tracer    trace.Tracer
	logger    *slog.Logger
	proposals metric.Int64Counter
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
			s.proposals, _ = m.Int64Counter("schoollists.service.proposals", metric.WithDescription("Seller product proposals on besoins"))
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

func (s *Service) ListPublished(ctx context.Context) ([]*domain.ListeScolaire, error) {
	ctx, span := s.tracer.Start(ctx, "SchoolListsService.ListPublished")
	defer span.End()
	result, err := s.inner.ListPublished(ctx)
	return result, s.fail(ctx, span, err, "failed to list published school lists")
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.ListeScolaire, error) {
	ctx, span := s.tracer.Start(ctx, "SchoolListsService.ListAll")
	defer span.End()
	result, err := s.inner.ListAll(ctx)
	return result, s.fail(ctx, span, err, "failed to list school lists")
}

func (s *Service) GetList(ctx context.Context, id string) (*domain.ListeScolaire, error) {
	ctx, span := s.tracer.Start(ctx, "SchoolListsService.GetList", trace.WithAttributes(attribute.String("liste.id", id)))
	defer span.End()
	return s.inner.GetList(ctx, id)
}

func (s *Service) CreateList(ctx context.Context, input ports.CreateListInput) (*domain.ListeScolaire, error) {
	ctx, span := s.tracer.Start(ctx, "SchoolListsService.CreateList", trace.WithAttributes(attribute.Int("besoins.count", len(input.Besoins))))
	defer span.End()
	result, err := s.inner.CreateList(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to create school list")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "school list created", slog.String("liste_id", result.ID))
	return result, nil
}

func (s *Service) Publish(ctx context.Context, id string) (*domain.ListeScolaire, error) {
	ctx, span := s.tracer.Start(ctx, "SchoolListsService.Publish", trace.WithAttributes(attribute.String("liste.id", id)))
	defer span.End()
	result, err := s.inner.Publish(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to publish school list", slog.String("liste_id", id))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "school list published", slog.String("liste_id", id))
	return result, nil
}

func (s *Service) Archive(ctx context.Context, id string) (*domain.ListeScolaire, error) {
	ctx, span := s.tracer.Start(ctx, "SchoolListsService.Archive", trace.WithAttributes(attribute.String("liste.id", id)))
	defer span.End()
	result, err := s.inner.Archive(ctx, id)
	return result, s.fail(ctx, span, err, "failed to archive school list", slog.String("liste_id", id))
}

func (s *Service) ProposeProduct(ctx context.Context, input ports.ProposeProductInput) (*domain.ListeScolaire, error) {
	ctx, span := s.tracer.Start(ctx, "SchoolListsService.ProposeProduct", trace.WithAttributes(
		attribute.String("besoin.id", input.BesoinID),
		attribute.String("product.id", input.ProductID),
	))
	defer span.End()
	result, err := s.inner.ProposeProduct(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "product proposal rejected", slog.String("besoin_id", input.BesoinID))
	}
	if s.proposals != nil {
		s.proposals.Add(ctx, 1)
	}
	return result, nil
}

func (s *Service) ValidateAssociation(ctx context.Context, besoinID, associationID string) (*domain.ListeScolaire, error) {
	ctx, span := s.tracer.Start(ctx, "SchoolListsService.ValidateAssociation", trace.WithAttributes(attribute.String("besoin.id", besoinID)))
	defer span.End()
	result, err := s.inner.ValidateAssociation(ctx, besoinID, associationID)
	return result, s.fail(ctx, span, err, "failed to validate association", slog.String("besoin_id", besoinID))
}

// fail records err on the span and log; it returns err unchanged, including nil.
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
