package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrEmptyDSN = errors.New("postgres DSN is empty")

type poolSettings struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	pingTimeout time.Duration
}

// PoolOption tunes the connection pool opened by Connect.
type PoolOption func(*poolSettings)

func WithMaxOpenConns(n int) PoolOption {
	return func(p *poolSettings) {
		if n > 0 {
			p.maxOpen = n
		}
	}
}

func WithMaxIdleConns(n int) PoolOption {
	return func(p *poolSettings) {
		if n >= 0 {
			p.maxIdle = n
		}
	}
}

func WithPingTimeout(d time.Duration) PoolOption {
	return func(p *poolSettings) {
		if d > 0 {
			p.pingTimeout = d
		}
	}
}

// Connect opens the marketplace database through GORM with otelgorm tracing
// and translated driver errors (gorm.ErrDuplicatedKey and friends).
func Connect(ctx context.Context, dsn string, opts ...PoolOption) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}
	pool := poolSettings{maxOpen: 20, maxIdle: 5, maxLifetime: 30 * time.Minute, pingTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&pool)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Use(otelgorm.NewPlugin(otelgorm.WithDBName("marketplace"), otelgorm.WithoutQueryVariables())); err != nil {
		return nil, fmt.Errorf("register otelgorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(pool.maxOpen)
	sqlDB.SetMaxIdleConns(pool.maxIdle)
	sqlDB.SetConnMaxLifetime(pool.maxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pool.pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// ConnectOptional is Connect for processes that can run without a database.
// Any failure is logged and reported as a nil DB so callers fall back to the
// in-memory adapters. The returned cleanup is always safe to call.
func ConnectOptional(ctx context.Context, dsn string, log *slog.Logger, opts ...PoolOption) (*gorm.DB, func()) {
	if log == nil {
		log = slog.Default()
	}
	noop := func() {}

	db, err := Connect(ctx, dsn, opts...)
	switch {
	case errors.Is(err, ErrEmptyDSN):
		log.Warn("POSTGRES_DSN not set, using in-memory repositories")
		return nil, noop
	case err != nil:
		log.Warn("postgres unavailable, using in-memory repositories", slog.String("error", err.Error()))
		return nil, noop
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("postgres handle unusable, using in-memory repositories", slog.String("error", err.Error()))
		return nil, noop
	}
	log.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}
