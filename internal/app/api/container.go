package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	googleclient "github.com/Apurer/go-gin-marketplace/internal/clients/http/google"
	cartgateways "github.com/Apurer/go-gin-marketplace/internal/domains/cart/adapters/gateways"
	cartmemory "github.com/Apurer/go-gin-marketplace/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/go-gin-marketplace/internal/domains/cart/adapters/observability"
	cartredis "github.com/Apurer/go-gin-marketplace/internal/domains/cart/adapters/redis"
	cartapp "github.com/Apurer/go-gin-marketplace/internal/domains/cart/application"
	cartports "github.com/Apurer/go-gin-marketplace/internal/domains/cart/ports"
	catalogmemory "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/persistence/postgres"
	catalogredis "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/redis"
	catalogs3 "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/storage/s3"
	catalogapp "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/adapters/auth"
	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/adapters/external/google"
	identitymemory "github.com/Apurer/go-gin-marketplace/internal/domains/identity/adapters/memory"
	identityobs "github.com/Apurer/go-gin-marketplace/internal/domains/identity/adapters/observability"
	identitypostgres "github.com/Apurer/go-gin-marketplace/internal/domains/identity/adapters/persistence/postgres"
	identityapp "github.com/Apurer/go-gin-marketplace/internal/domains/identity/application"
	identityports "github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/adapters/email"
	notificationsmemory "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/adapters/memory"
	notificationsobs "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/adapters/observability"
	notificationspostgres "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/adapters/persistence/postgres"
	notificationsapp "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/application"
	notificationsports "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
	ordersevents "github.com/Apurer/go-gin-marketplace/internal/domains/orders/adapters/events"
	ordersgateways "github.com/Apurer/go-gin-marketplace/internal/domains/orders/adapters/gateways"
	ordersmemory "github.com/Apurer/go-gin-marketplace/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-marketplace/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-marketplace/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
	listsgateways "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/adapters/gateways"
	listsmemory "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/adapters/memory"
	listsobs "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/adapters/observability"
	listspostgres "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/adapters/persistence/postgres"
	listsapp "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/application"
	listsports "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
	storesmemory "github.com/Apurer/go-gin-marketplace/internal/domains/stores/adapters/memory"
	storesobs "github.com/Apurer/go-gin-marketplace/internal/domains/stores/adapters/observability"
	storespostgres "github.com/Apurer/go-gin-marketplace/internal/domains/stores/adapters/persistence/postgres"
	storesapp "github.com/Apurer/go-gin-marketplace/internal/domains/stores/application"
	storesports "github.com/Apurer/go-gin-marketplace/internal/domains/stores/ports"
	supportgateways "github.com/Apurer/go-gin-marketplace/internal/domains/support/adapters/gateways"
	supportmemory "github.com/Apurer/go-gin-marketplace/internal/domains/support/adapters/memory"
	supportobs "github.com/Apurer/go-gin-marketplace/internal/domains/support/adapters/observability"
	supportpostgres "github.com/Apurer/go-gin-marketplace/internal/domains/support/adapters/persistence/postgres"
	supportapp "github.com/Apurer/go-gin-marketplace/internal/domains/support/application"
	supportports "github.com/Apurer/go-gin-marketplace/internal/domains/support/ports"
	"github.com/Apurer/go-gin-marketplace/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-marketplace/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-marketplace/internal/platform/postgres"
)

// Services holds the decorated application services of every bounded context.
type Services struct {
	Stores        storesports.Service
	Identity      identityports.Service
	Catalog       catalogports.Service
	Notifications notificationsports.Service
	Orders        ordersports.Service
	SchoolLists   listsports.Service
	Cart          cartports.Service
	Support       supportports.Service
}

type backends struct {
	db    *gorm.DB
	redis redis.UniversalClient
}

// BuildServices connects the optional backends and wires every service.
// Postgres and Redis fall back to in-memory adapters when unavailable. The
// returned cleanup releases connections in reverse order.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, func(), error) {
	logger := effectiveLogger(instruments)
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	cleanups = append(cleanups, closeDB)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, nil, err
		}
		logger.Info("repositories configured with postgres")
	}
	rdb := connectRedis(ctx, cfg, logger)
	if rdb != nil {
		cleanups = append(cleanups, func() { _ = rdb.Close() })
	}
	b := backends{db: db, redis: rdb}

	stores := storesobs.New(
		storesapp.NewService(buildStoresRepository(b)),
		storesobs.WithLogger(logger),
		storesobs.WithTracer(instruments.Tracer("internal.stores.application")),
		storesobs.WithMeter(instruments.Meter("internal.stores.application")),
	)

	identity, err := buildIdentityService(cfg, b, stores)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	identity = identityobs.New(
		identity,
		identityobs.WithLogger(logger),
		identityobs.WithTracer(instruments.Tracer("internal.identity.application")),
		identityobs.WithMeter(instruments.Meter("internal.identity.application")),
	)

	catalog := catalogobs.New(
		buildCatalogService(ctx, cfg, b, logger),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	notifications := notificationsobs.New(
		notificationsapp.NewService(buildNotificationsRepository(b), email.NewSender(cfg.Email, logger)),
		notificationsobs.WithLogger(logger),
		notificationsobs.WithTracer(instruments.Tracer("internal.notifications.application")),
		notificationsobs.WithMeter(instruments.Meter("internal.notifications.application")),
	)

	publisher, closePublisher := buildEventPublisher(cfg, logger)
	cleanups = append(cleanups, closePublisher)
	orders := ordersobs.New(
		ordersapp.NewService(
			buildOrdersRepository(b),
			ordersgateways.NewCatalogInventory(catalog),
			ordersapp.WithCustomers(ordersgateways.NewIdentityCustomers(identity)),
			ordersapp.WithRevenueLedger(stores),
			ordersapp.WithNotifier(ordersgateways.NewInAppNotifier(notifications)),
			ordersapp.WithEventPublisher(publisher),
			ordersapp.WithLogger(logger),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	lists := listsobs.New(
		listsapp.NewService(buildSchoolListsRepository(b), listsapp.WithProductOwnership(listsgateways.NewCatalogOwnership(catalog))),
		listsobs.WithLogger(logger),
		listsobs.WithTracer(instruments.Tracer("internal.schoollists.application")),
		listsobs.WithMeter(instruments.Meter("internal.schoollists.application")),
	)

	cart := cartobs.New(
		cartapp.NewService(buildCartStore(b), cartgateways.NewCatalogProducts(catalog), cartgateways.NewPublishedSchoolLists(lists)),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	support := supportobs.New(
		supportapp.NewService(
			buildSupportRepository(b),
			supportapp.WithMailer(supportgateways.NewNotificationsMailer(notifications)),
			supportapp.WithLogger(logger),
		),
		supportobs.WithLogger(logger),
		supportobs.WithTracer(instruments.Tracer("internal.support.application")),
		supportobs.WithMeter(instruments.Meter("internal.support.application")),
	)

	return &Services{
		Stores:        stores,
		Identity:      identity,
		Catalog:       catalog,
		Notifications: notifications,
		Orders:        orders,
		SchoolLists:   lists,
		Cart:          cart,
		Support:       support,
	}, cleanup, nil
}

func connectRedis(ctx context.Context, cfg Config, logger *slog.Logger) redis.UniversalClient {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, carts and idempotency keys stay in memory")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("failed to reach redis, falling back to memory", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
		_ = rdb.Close()
		return nil
	}
	logger.Info("redis configured", slog.String("addr", cfg.RedisAddr))
	return rdb
}

func buildStoresRepository(b backends) storesports.Repository {
	if b.db == nil {
		return storesmemory.NewRepository()
	}
	return storespostgres.NewRepository(b.db)
}

func buildIdentityService(cfg Config, b backends, stores storesports.Service) (identityports.Service, error) {
	tokens, err := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return nil, err
	}
	var repo identityports.Repository = identitymemory.NewRepository()
	var sessions identityports.SessionStore = identitymemory.NewSessionStore()
	if b.db != nil {
		repo = identitypostgres.NewRepository(b.db)
		sessions = identitypostgres.NewSessionStore(b.db)
	}
	opts := []identityapp.Option{
		identityapp.WithStoreProvisioner(stores),
		identityapp.WithSessionTTL(cfg.SessionTTL),
	}
	if cfg.GoogleClientID != "" {
		var clientOpts []googleclient.ClientOption
		if cfg.GoogleTokenInfoURL != "" {
			clientOpts = append(clientOpts, googleclient.WithBaseURL(cfg.GoogleTokenInfoURL))
		}
		verifier := google.NewVerifier(googleclient.NewClient(clientOpts...), cfg.GoogleClientID)
		opts = append(opts, identityapp.WithOAuthVerifier("google", verifier))
	}
	return identityapp.NewService(repo, sessions, tokens, auth.NewBcryptHasher(bcrypt.DefaultCost), opts...), nil
}

func buildCatalogService(ctx context.Context, cfg Config, b backends, logger *slog.Logger) catalogports.Service {
	opts := []catalogapp.Option{catalogapp.WithLogger(logger)}
	var (
		repo       catalogports.Repository
		categories catalogports.CategoryRepository
	)
	if b.db != nil {
		pg := catalogpostgres.NewRepository(b.db)
		repo, categories = pg, pg
	} else {
		mem := catalogmemory.NewRepository()
		repo, categories = mem, mem
	}
	switch {
	case b.redis != nil:
		opts = append(opts, catalogapp.WithIdempotencyStore(catalogredis.NewIdempotencyStore(b.redis, "", 0)))
	case b.db != nil:
		opts = append(opts, catalogapp.WithIdempotencyStore(catalogpostgres.NewIdempotencyStore(b.db)))
	default:
		opts = append(opts, catalogapp.WithIdempotencyStore(catalogmemory.NewIdempotencyStore()))
	}
	if cfg.S3Enabled() {
		storage, err := catalogs3.NewStorage(ctx, cfg.S3)
		if err != nil {
			logger.Warn("failed to configure S3 storage, image uploads disabled", slog.String("error", err.Error()))
		} else {
			opts = append(opts, catalogapp.WithObjectStorage(storage))
			logger.Info("product images stored in S3", slog.String("bucket", cfg.S3.Bucket))
		}
	} else {
		logger.Warn("S3_BUCKET not set, image uploads disabled")
	}
	return catalogapp.NewService(repo, categories, opts...)
}

func buildNotificationsRepository(b backends) notificationsports.Repository {
	if b.db == nil {
		return notificationsmemory.NewRepository()
	}
	return notificationspostgres.NewRepository(b.db)
}

func buildOrdersRepository(b backends) ordersports.Repository {
	if b.db == nil {
		return ordersmemory.NewRepository()
	}
	return orderspostgres.NewRepository(b.db)
}

func buildEventPublisher(cfg Config, logger *slog.Logger) (ordersports.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, order events are logged only")
		return ordersevents.NewLogPublisher(logger), func() {}
	}
	publisher := ordersevents.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
	logger.Info("order events published to kafka", slog.String("topic", cfg.KafkaOrdersTopic))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close kafka writer", slog.String("error", err.Error()))
		}
	}
}

func buildSchoolListsRepository(b backends) listsports.Repository {
	if b.db == nil {
		return listsmemory.NewRepository()
	}
	return listspostgres.NewRepository(b.db)
}

func buildCartStore(b backends) cartports.CartStore {
	if b.redis == nil {
		return cartmemory.NewStore()
	}
	return cartredis.NewStore(b.redis, "", 0)
}

func buildSupportRepository(b backends) supportports.Repository {
	if b.db == nil {
		return supportmemory.NewRepository()
	}
	return supportpostgres.NewRepository(b.db)
}

// ConnectTemporalClient dials Temporal with tracing and structured logging.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
