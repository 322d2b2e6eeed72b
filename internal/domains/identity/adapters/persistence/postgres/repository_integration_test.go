//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
	"github.com/Apurer/go-gin-marketplace/internal/platform/migrations"
)

func setupIdentityPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("marketplace_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestRepository_SaveAndLookup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupIdentityPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser(uuid.NewString(), "Alice", "Alice@Example.com", domain.RoleSeller, domain.ProviderCredentials)
	require.NoError(t, err)
	user.PasswordHash = "hash"
	user.StoreID = uuid.NewString()

	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", saved.Email)
	assert.Equal(t, user.StoreID, saved.StoreID)

	byEmail, err := repo.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, domain.RoleSeller, byEmail.Role)

	_, err = repo.GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, ports.ErrNotFound)

	dup, err := domain.NewUser(uuid.NewString(), "Other", "alice@example.com", domain.RoleCustomer, domain.ProviderCredentials)
	require.NoError(t, err)
	_, err = repo.Save(ctx, dup)
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupIdentityPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db)
	ctx := context.Background()
	userID := uuid.NewString()
	live := domain.Session{ID: uuid.NewString(), UserID: userID, ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now()}
	stale := domain.Session{ID: uuid.NewString(), UserID: userID, ExpiresAt: time.Now().Add(-time.Hour), CreatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, live))
	require.NoError(t, store.Save(ctx, stale))

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	_, err = store.Get(ctx, stale.ID)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
	got, err := store.Get(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)

	require.NoError(t, store.DeleteByUser(ctx, userID))
	_, err = store.Get(ctx, live.ID)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}
