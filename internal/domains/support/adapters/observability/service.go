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

	"github.com/Apurer/go-gin-marketplace/internal/domains/support/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/support/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace/internal/domains/support/adapters/observability/service"

// Service decorates the support service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	created metric.Int64Counter
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
			s.created, _ = m.Int64Counter("support.service.tickets_created", metric.WithDescription("Support tickets opened"))
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

func (s *Service) CreateTicket(ctx context.Context, input ports.CreateTicketInput) (*domain.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "SupportService.CreateTicket", trace.WithAttributes(
		attribute.Bool("ticket.guest", input.UserID == ""),
		attribute.String("ticket.category", input.Category),
	))
	defer span.End()
	ticket, err := s.inner.CreateTicket(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to create ticket", slog.String("error", err.Error()))
		return nil, err
	}
	if s.created != nil {
		s.created.Add(ctx, 1, metric.WithAttributes(
			attribute.String("category", string(ticket.Category)),
			attribute.String("priority", string(ticket.Priority)),
		))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "ticket created", slog.String("ticket_id", ticket.ID), slog.String("priority", string(ticket.Priority)))
	return ticket, nil
}

func (s *Service) ListMyTickets(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "SupportService.ListMyTickets")
	defer span.End()
	return s.inner.ListMyTickets(ctx, userID)
}

func (s *Service) GetTicket(ctx context.Context, userID, id string) (*domain.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "SupportService.GetTicket", trace.WithAttributes(attribute.String("ticket.id", id)))
	defer span.End()
	return s.inner.GetTicket(ctx, userID, id)
}

var _ ports.Service = (*Service)(nil)
