package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
)

func newMockIdempotencyStore(t *testing.T) (*IdempotencyStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewIdempotencyStore(db), mock
}

func TestIdempotencyStoreSave(t *testing.T) {
	record := ports.IdempotencyRecord{Key: "k-1", RequestHash: "h-1", ProductID: "p-1"}
	storedCols := []string{"key", "request_hash", "product_id", "created_at"}

	t.Run("first claim inserts", func(t *testing.T) {
		store, mock := newMockIdempotencyStore(t)
		mock.ExpectExec(`INSERT INTO "product_idempotency_keys" .* ON CONFLICT DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		saved, err := store.Save(context.Background(), record)
		require.NoError(t, err)
		assert.Equal(t, "p-1", saved.ProductID)
		assert.False(t, saved.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same request replays", func(t *testing.T) {
		store, mock := newMockIdempotencyStore(t)
		mock.ExpectExec(`INSERT INTO "product_idempotency_keys"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "product_idempotency_keys" WHERE key = \$1`).
			WillReturnRows(sqlmock.NewRows(storedCols).AddRow("k-1", "h-1", "p-1", time.Now()))

		saved, err := store.Save(context.Background(), record)
		require.NoError(t, err)
		assert.Equal(t, "p-1", saved.ProductID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("different payload conflicts", func(t *testing.T) {
		store, mock := newMockIdempotencyStore(t)
		mock.ExpectExec(`INSERT INTO "product_idempotency_keys"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "product_idempotency_keys"`).
			WillReturnRows(sqlmock.NewRows(storedCols).AddRow("k-1", "other", "p-7", time.Now()))

		saved, err := store.Save(context.Background(), record)
		require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
		assert.Equal(t, "p-7", saved.ProductID)
	})
}

func TestIdempotencyStoreGetUnknownKey(t *testing.T) {
	store, mock := newMockIdempotencyStore(t)
	mock.ExpectQuery(`SELECT \* FROM "product_idempotency_keys"`).
		WillReturnRows(sqlmock.NewRows([]string{"key"}))

	rec, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestIdempotencyStoreUnconfigured(t *testing.T) {
	var store *IdempotencyStore
	_, err := store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, errStoreNotConfigured)
}
