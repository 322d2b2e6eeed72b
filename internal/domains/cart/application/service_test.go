package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/ports"
)

type fakeProducts map[string]ports.ProductSnapshot

func (f fakeProducts) Lookup(_ context.Context, id string) (*ports.ProductSnapshot, error) {
	p, ok := f[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return &p, nil
}

type fakeLists map[string][]ports.SchoolListLine

func (f fakeLists) PublishedLines(_ context.Context, id string) ([]ports.SchoolListLine, error) {
	lines, ok := f[id]
	if !ok {
		return nil, ports.ErrSchoolListNotFound
	}
	return lines, nil
}

type failingStore struct{ *memory.Store }

func (failingStore) Save(context.Context, *domain.Cart) error { return errors.New("redis down") }

func newTestService(store ports.CartStore) *Service {
	products := fakeProducts{
		"pen": {ID: "pen", Name: "Pen", Price: decimal.RequireFromString("1.50"), Stock: 5},
		"box": {ID: "box", Name: "Box", Price: decimal.NewFromInt(10), Stock: 100, WholesalePrice: decimal.NewFromInt(8), WholesaleMinQty: 20},
	}
	lists := fakeLists{
		"l1": {
			{BesoinID: "b1", NomProduit: "Cahier", Quantite: 3, Price: decimal.RequireFromString("2.40"), Priced: true},
			{BesoinID: "b2", NomProduit: "Gomme", Quantite: 0},
		},
	}
	fixed := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	return NewService(store, products, lists, WithClock(func() time.Time { return fixed }))
}

func TestService_GetEmptyCart(t *testing.T) {
	svc := newTestService(memory.NewStore())

	cart, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.OwnerID)
	assert.Empty(t, cart.Items)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_AddProductDefaultsAndMerges(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewStore())

	_, err := svc.AddProduct(ctx, "user-1", "pen", 0)
	require.NoError(t, err)
	cart, err := svc.AddProduct(ctx, "user-1", "pen", 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.Items[0].MaxStock)

	stored, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Items[0].Quantity)
}

func TestService_AddProductExceedingStock(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewStore())

	_, err := svc.AddProduct(ctx, "user-1", "pen", 4)
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, "user-1", "pen", 2)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrExceedsStock)

	stored, _ := svc.Get(ctx, "user-1")
	assert.Equal(t, 4, stored.Items[0].Quantity)
}

func TestService_AddUnknownProduct(t *testing.T) {
	svc := newTestService(memory.NewStore())
	_, err := svc.AddProduct(context.Background(), "user-1", "ghost", 1)
	assert.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestService_AddSchoolList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewStore())

	_, err := svc.AddSchoolList(ctx, "token-1", "l1")
	require.NoError(t, err)
	cart, err := svc.AddSchoolList(ctx, "token-1", "l1")
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	cahier, ok := cart.Item("liste-l1-besoin-b1")
	require.True(t, ok)
	assert.Equal(t, 6, cahier.Quantity)
	assert.True(t, decimal.RequireFromString("2.40").Equal(cahier.UnitPrice))
	assert.Equal(t, domain.SourceSchoolList, cahier.Source)
	assert.Equal(t, "b1", cahier.BesoinID)

	gomme, ok := cart.Item("liste-l1-besoin-b2")
	require.True(t, ok)
	assert.Equal(t, 2, gomme.Quantity)
	assert.True(t, DefaultSchoolListPrice.Equal(gomme.UnitPrice))

	_, err = svc.AddSchoolList(ctx, "token-1", "missing")
	assert.ErrorIs(t, err, ports.ErrSchoolListNotFound)
}

func TestService_UpdateQuantityCapsAndRemoves(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewStore())
	_, err := svc.AddProduct(ctx, "user-1", "pen", 1)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "user-1", "pen", 99)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	cart, err = svc.UpdateQuantity(ctx, "user-1", "pen", -1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.UpdateQuantity(ctx, "user-1", "pen", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestService_TotalsUseWholesale(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewStore())
	cart, err := svc.AddProduct(ctx, "user-1", "box", 20)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(160).Equal(cart.Totals().Total))
}

func TestService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewStore())
	_, _ = svc.AddProduct(ctx, "user-1", "pen", 1)
	_, _ = svc.AddProduct(ctx, "user-1", "box", 1)

	cart, err := svc.RemoveItem(ctx, "user-1", "pen")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = svc.Clear(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	stored, _ := svc.Get(ctx, "user-1")
	assert.Empty(t, stored.Items)
}

func TestService_StoreFailureSurfaces(t *testing.T) {
	svc := newTestService(failingStore{memory.NewStore()})
	_, err := svc.AddProduct(context.Background(), "user-1", "pen", 1)
	assert.EqualError(t, err, "redis down")
}
