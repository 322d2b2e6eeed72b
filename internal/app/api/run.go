package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	marketplaceserver "github.com/Apurer/go-gin-marketplace/go"
	ordersworkflows "github.com/Apurer/go-gin-marketplace/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-marketplace/internal/platform/observability"
)

const serviceName = "marketplace-api"

// Run boots the marketplace HTTP API with observability, repositories, and workflows wired.
// It returns once ctx is cancelled and in-flight requests have drained.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.WithEnvironment(cfg.Environment))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup, err := BuildServices(ctx, cfg, instruments)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	defer cleanup()

	var checkout ordersports.CheckoutOrchestrator = ordersworkflows.NewInlineCheckout(services.Orders)
	if temporalClient, err := ConnectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline checkout", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		checkout = ordersworkflows.NewTemporalCheckout(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := marketplaceserver.ApiHandleFunctions{
		AuthAPI:         marketplaceserver.NewAuthAPI(services.Identity),
		CatalogAPI:      marketplaceserver.NewCatalogAPI(services.Catalog),
		OrderAPI:        marketplaceserver.NewOrderAPI(services.Orders, checkout),
		CartAPI:         marketplaceserver.NewCartAPI(services.Cart),
		SchoolListAPI:   marketplaceserver.NewSchoolListAPI(services.SchoolLists),
		SupportAPI:      marketplaceserver.NewSupportAPI(services.Support),
		NotificationAPI: marketplaceserver.NewNotificationAPI(services.Notifications),
		StatsAPI:        marketplaceserver.NewStatsAPI(services.Stores),
	}

	router := newEngine(cfg)
	marketplaceserver.NewRouterWithGinEngine(router, services.Identity, handlers)

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Marketplace API listening", slog.String("addr", addr), slog.String("environment", cfg.Environment))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Marketplace API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down Marketplace API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newEngine returns a gin engine with recovery, request ids, CORS, and tracing installed.
func newEngine(cfg Config) *gin.Engine {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(requestid.New())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	router.Use(otelgin.Middleware(serviceName))
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", marketplaceserver.CartTokenHeader, marketplaceserver.IdempotencyKeyHeader)
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	cfg.ExposeHeaders = []string{requestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

const requestIDHeader = "X-Request-ID"

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
