package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/adapters/memory"
	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/ports"
)

func TestCreateStore_IsIdempotentPerOwner(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	first, err := svc.CreateStore(ctx, "owner-1", "Shop")
	require.NoError(t, err)
	second, err := svc.CreateStore(ctx, "owner-1", "Another name")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	id, err := svc.ProvisionStore(ctx, "owner-2", "Second Shop")
	require.NoError(t, err)
	byOwner, err := svc.GetStoreByOwner(ctx, "owner-2")
	require.NoError(t, err)
	require.Equal(t, id, byOwner.ID)
}

func TestRecordAndReverseSale(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()
	store, err := svc.CreateStore(ctx, "owner-1", "Shop")
	require.NoError(t, err)

	require.NoError(t, svc.RecordSale(ctx, store.ID, decimal.NewFromInt(40)))
	require.NoError(t, svc.ReverseSale(ctx, store.ID, decimal.NewFromInt(100)))

	updated, err := svc.GetStore(ctx, store.ID)
	require.NoError(t, err)
	require.True(t, updated.Revenue.IsZero())
	require.Zero(t, updated.TotalSales)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	require.True(t, stats.TotalRevenue.IsZero())
	require.Zero(t, stats.TotalOrders)

	require.ErrorIs(t, svc.RecordSale(ctx, "missing", decimal.NewFromInt(1)), ports.ErrNotFound)
	require.ErrorIs(t, svc.RecordSale(ctx, store.ID, decimal.NewFromInt(-1)), ErrInvalidInput)
}

func TestCreateStore_Validation(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.CreateStore(context.Background(), "", "Shop")
	require.ErrorIs(t, err, ErrInvalidInput)
}
