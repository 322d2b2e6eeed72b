package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

func newOrder(t *testing.T, id, userID, storeID string, createdAt time.Time) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(id, "ORD-"+id, userID, storeID, "card",
		domain.ShippingAddress{FullName: "Ada", City: "Paris"},
		[]domain.OrderItem{{ProductID: "p-1", Name: "Pen", Quantity: 1, Price: decimal.NewFromInt(3)}})
	require.NoError(t, err)
	order.CreatedAt = createdAt
	return order
}

func TestRepository_ListsNewestFirstAndFiltersStatus(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := newOrder(t, "o-1", "u-1", "s-1", base)
	newer := newOrder(t, "o-2", "u-1", "s-2", base.Add(time.Hour))
	other := newOrder(t, "o-3", "u-2", "s-1", base)
	require.NoError(t, repo.SaveAll(ctx, []*domain.Order{older, newer, other}))

	list, err := repo.ListByCustomer(ctx, "u-1", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "o-2", list[0].ID)

	_, err = older.Cancel(base)
	require.NoError(t, err)
	_, err = repo.Save(ctx, older)
	require.NoError(t, err)

	cancelled, err := repo.ListByCustomer(ctx, "u-1", domain.StatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	require.Equal(t, "o-1", cancelled[0].ID)

	byStore, err := repo.ListByStore(ctx, "s-1", "")
	require.NoError(t, err)
	require.Len(t, byStore, 2)
}

func TestRepository_SaveAllIsAllOrNothing(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	first := newOrder(t, "o-1", "u-1", "s-1", time.Now())
	require.NoError(t, repo.SaveAll(ctx, []*domain.Order{first}))

	second := newOrder(t, "o-2", "u-1", "s-1", time.Now())
	require.Error(t, repo.SaveAll(ctx, []*domain.Order{second, first}))

	_, err := repo.GetByID(ctx, "o-2")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
