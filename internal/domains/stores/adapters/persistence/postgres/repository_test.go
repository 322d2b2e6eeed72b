package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/ports"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewRepository(db), mock, mockDB
}

func TestRepository_ReverseSaleClampsInSQL(t *testing.T) {
	repo, mock, mockDB := newMockRepository(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "stores" SET .*GREATEST\(revenue - \$\d, 0\).*GREATEST\(total_sales - 1, 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "platform_statistics" SET .*GREATEST\(total_orders - 1, 0\).*GREATEST\(total_revenue - \$\d, 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReverseSale(context.Background(), "store-1", decimal.NewFromInt(25))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RecordSaleUpsertsStatistic(t *testing.T) {
	repo, mock, mockDB := newMockRepository(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "stores" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO platform_statistics .* ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("global", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RecordSale(context.Background(), "store-1", decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RecordSaleUnknownStore(t *testing.T) {
	repo, mock, mockDB := newMockRepository(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "stores" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.RecordSale(context.Background(), "missing", decimal.NewFromInt(5))
	require.ErrorIs(t, err, ports.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_StatisticsDefaultsToZero(t *testing.T) {
	repo, mock, mockDB := newMockRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "platform_statistics"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "total_revenue", "total_orders", "updated_at"}))

	stats, err := repo.Statistics(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Zero(t, stats.TotalOrders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByOwner(t *testing.T) {
	repo, mock, mockDB := newMockRepository(t)
	defer mockDB.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "stores" WHERE owner_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "revenue", "total_sales", "created_at", "updated_at"}).
			AddRow("store-1", "owner-1", "Shop", "120.50", 3, now, now))

	store, err := repo.GetByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "store-1", store.ID)
	assert.True(t, decimal.RequireFromString("120.50").Equal(store.Revenue))
	assert.EqualValues(t, 3, store.TotalSales)
	assert.NoError(t, mock.ExpectationsWereMet())
}
