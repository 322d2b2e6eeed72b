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

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/adapters/observability/service"

// Service decorates the notifications service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
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

func (s *Service) Notify(ctx context.Context, input ports.NotifyInput) (*domain.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationsService.Notify", trace.WithAttributes(attribute.String("notification.type", string(input.Type))))
	defer span.End()
	n, err := s.inner.Notify(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to store notification", slog.String("user_id", input.UserID))
	}
	s.metrics.recordNotified(ctx, n.Type)
	return n, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationsService.ListForUser", trace.WithAttributes(attribute.Bool("unread_only", unreadOnly)))
	defer span.End()
	return s.inner.ListForUser(ctx, userID, unreadOnly)
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationsService.MarkRead", trace.WithAttributes(attribute.String("notification.id", id)))
	defer span.End()
	n, err := s.inner.MarkRead(ctx, userID, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark notification read", slog.String("notification_id", id))
	}
	return n, nil
}

func (s *Service) SendEmail(ctx context.Context, email domain.Email) (*ports.SentEmail, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationsService.SendEmail")
	defer span.End()
	sent, err := s.inner.SendEmail(ctx, email)
	if err != nil {
		s.metrics.recordEmail(ctx, "failed")
		return nil, s.handleError(ctx, span, err, "email delivery failed", slog.String("subject", email.Subject))
	}
	outcome := "sent"
	if sent.Simulated {
		outcome = "simulated"
	}
	span.SetAttributes(attribute.String("email.outcome", outcome))
	s.metrics.recordEmail(ctx, outcome)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "email dispatched", slog.String("message_id", sent.ID), slog.String("outcome", outcome))
	return sent, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.LogAttrs(ctx, slog.LevelError, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

type serviceMetrics struct {
	notified metric.Int64Counter
	emails   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	notified, _ := m.Int64Counter("notifications.service.notifications_created", metric.WithDescription("In-app notifications stored"))
	emails, _ := m.Int64Counter("notifications.service.emails", metric.WithDescription("Emails dispatched by outcome"))
	return serviceMetrics{notified: notified, emails: emails}
}

func (m serviceMetrics) recordNotified(ctx context.Context, typ domain.Type) {
	if m.notified != nil {
		m.notified.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(typ))))
	}
}

func (m serviceMetrics) recordEmail(ctx context.Context, outcome string) {
	if m.emails != nil {
		m.emails.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

var _ ports.Service = (*Service)(nil)
