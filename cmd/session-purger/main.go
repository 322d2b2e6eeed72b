package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/app/api"
	identitypostgres "github.com/Apurer/go-gin-marketplace/internal/domains/identity/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/go-gin-marketplace/internal/platform/postgres"
)

// Purges expired sessions once, or every SESSION_PURGE_INTERVAL_MINUTES when set.
func main() {
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	db, cleanup := platformpostgres.ConnectOptional(connectCtx, cfg.PostgresDSN, logger, platformpostgres.WithMaxOpenConns(2), platformpostgres.WithMaxIdleConns(1))
	cancel()
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}
	store := identitypostgres.NewSessionStore(db)

	if cfg.SessionPurgeIntervalMinute == 0 {
		if err := purge(ctx, store, logger); err != nil {
			log.Fatalf("failed to purge sessions: %v", err)
		}
		return
	}

	interval := time.Duration(cfg.SessionPurgeIntervalMinute) * time.Minute
	logger.Info("session purger scheduled", slog.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := purge(ctx, store, logger); err != nil {
			logger.Error("failed to purge sessions", slog.String("error", err.Error()))
		}
		select {
		case <-ctx.Done():
			logger.Info("session purger stopped")
			return
		case <-ticker.C:
		}
	}
}

func purge(ctx context.Context, store *identitypostgres.SessionStore, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	removed, err := store.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	logger.Info("session purge completed", slog.Int64("removed", removed))
	return nil
}
