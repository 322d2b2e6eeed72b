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

	identitydomain "github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
	identityports "github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace/internal/domains/identity/adapters/observability/service"

// Service decorates the identity service with tracing, logging, and metrics.
type Service struct {
	inner   identityports.Service
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

// New wraps the core identity service.
func New(inner identityports.Service, opts ...Option) identityports.Service {
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

func (s *Service) RegisterClient(ctx context.Context, input identityports.RegisterInput) (*identityports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.RegisterClient")
	defer span.End()
	result, err := s.inner.RegisterClient(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "client registration failed")
	}
	s.metrics.recordRegistered(ctx, identitydomain.RoleCustomer)
	s.logInfo(ctx, "client registered", slog.String("user_id", result.User.ID))
	return result, nil
}

func (s *Service) RegisterSeller(ctx context.Context, input identityports.RegisterInput) (*identityports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.RegisterSeller")
	defer span.End()
	result, err := s.inner.RegisterSeller(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "seller registration failed")
	}
	s.metrics.recordRegistered(ctx, identitydomain.RoleSeller)
	s.logInfo(ctx, "seller registered", slog.String("user_id", result.User.ID), slog.String("store_id", result.User.StoreID))
	return result, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*identityports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Login")
	defer span.End()
	result, err := s.inner.Login(ctx, email, password)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	span.SetAttributes(attribute.String("user.id", result.User.ID), attribute.String("user.role", string(result.User.Role)))
	s.metrics.recordLogin(ctx, "credentials")
	return result, nil
}

func (s *Service) SignInWithOAuth(ctx context.Context, input identityports.OAuthSignInInput) (*identityports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.SignInWithOAuth", trace.WithAttributes(attribute.String("oauth.provider", input.Provider)))
	defer span.End()
	result, err := s.inner.SignInWithOAuth(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "oauth sign-in failed", slog.String("provider", input.Provider))
	}
	if result.Created {
		s.metrics.recordRegistered(ctx, result.User.Role)
		s.logInfo(ctx, "oauth account created", slog.String("user_id", result.User.ID), slog.String("provider", input.Provider))
	}
	s.metrics.recordLogin(ctx, input.Provider)
	return result, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (*identitydomain.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Authenticate")
	defer span.End()
	principal, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", principal.UserID))
	return principal, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, sessionID); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	return nil
}

func (s *Service) FindOrCreateGuest(ctx context.Context, email, name string) (*identitydomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.FindOrCreateGuest")
	defer span.End()
	user, err := s.inner.FindOrCreateGuest(ctx, email, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "guest lookup failed")
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*identitydomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.GetUser", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()
	return s.inner.GetUser(ctx, id)
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
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

type serviceMetrics struct {
	registrations metric.Int64Counter
	logins        metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registrations, _ := m.Int64Counter("identity.service.registrations", metric.WithDescription("Number of accounts created"))
	logins, _ := m.Int64Counter("identity.service.logins", metric.WithDescription("Number of successful sign-ins"))
	return serviceMetrics{registrations: registrations, logins: logins}
}

func (m serviceMetrics) recordRegistered(ctx context.Context, role identitydomain.Role) {
	if m.registrations != nil {
		m.registrations.Add(ctx, 1, metric.WithAttributes(attribute.String("role", string(role))))
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, method string) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("method", method)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ identityports.Service = (*Service)(nil)
