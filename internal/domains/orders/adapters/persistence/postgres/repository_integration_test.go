//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func TestRepository_CheckoutRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.NewString()
	storeA, storeB := uuid.NewString(), uuid.NewString()
	now := time.Now().UTC().Truncate(time.Millisecond)

	build := func(storeID string, createdAt time.Time) *domain.Order {
		order, err := domain.NewOrder(uuid.NewString(), domain.OrderNumber(createdAt, 7), userID, storeID, "card",
			domain.ShippingAddress{FullName: "Ada", Street: "1 rue", City: "Paris", PostalCode: "75001", Country: "FR"},
			[]domain.OrderItem{
				{ProductID: uuid.NewString(), Name: "Pen", Quantity: 2, Price: decimal.RequireFromString("1.25")},
				{ProductID: uuid.NewString(), Name: "Ink", Quantity: 1, Price: decimal.RequireFromString("3.10")},
			})
		require.NoError(t, err)
		order.CreatedAt, order.UpdatedAt = createdAt, createdAt
		return order
	}
	first := build(storeA, now.Add(-time.Minute))
	second := build(storeB, now)
	require.NoError(t, repo.SaveAll(ctx, []*domain.Order{first, second}))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "75001", got.ShippingAddress.PostalCode)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Pen", got.Items[0].Name)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("5.60")))

	list, err := repo.ListByCustomer(ctx, userID, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	_, err = got.Cancel(now)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, saved.Status)
	assert.Equal(t, domain.PaymentRefunded, saved.PaymentStatus)

	pending, err := repo.ListByStore(ctx, storeA, domain.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRepository_SaveAllRollsBackOnDuplicate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	order, err := domain.NewOrder(uuid.NewString(), "ORD-1-1", "", uuid.NewString(), "cash_on_delivery",
		domain.ShippingAddress{City: "Lyon"},
		[]domain.OrderItem{{ProductID: uuid.NewString(), Name: "Glue", Quantity: 1, Price: decimal.NewFromInt(2)}})
	require.NoError(t, err)
	require.NoError(t, repo.SaveAll(ctx, []*domain.Order{order}))

	other, err := domain.NewOrder(uuid.NewString(), "ORD-1-2", "", order.StoreID, "cash_on_delivery",
		domain.ShippingAddress{City: "Lyon"},
		[]domain.OrderItem{{ProductID: uuid.NewString(), Name: "Tape", Quantity: 1, Price: decimal.NewFromInt(1)}})
	require.NoError(t, err)
	require.Error(t, repo.SaveAll(ctx, []*domain.Order{other, order}))

	list, err := repo.ListByStore(ctx, order.StoreID, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].UserID)
}
