package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/memory"
	storagememory "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/storage/memory"
	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
)

func ptr[T any](v T) *T { return &v }

func newTestService() (*Service, *memory.Repository) {
	repo := memory.NewRepository()
	svc := NewService(repo, repo,
		WithIdempotencyStore(memory.NewIdempotencyStore()),
		WithObjectStorage(storagememory.NewStorage("https://cdn.test")),
	)
	return svc, repo
}

func penInput(storeID string) types.CreateProductInput {
	return types.CreateProductInput{
		StoreID: storeID,
		ProductMutationInput: types.ProductMutationInput{
			Name:  ptr("Pen"),
			Price: ptr(decimal.RequireFromString("1.50")),
			Stock: ptr(10),
			Attributes: &types.AttributesInput{
				Brand: "Bic",
				Color: "Undefined",
			},
		},
	}
}

func TestCreateProduct(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.CreateProduct(context.Background(), penInput("store-1"))
	require.NoError(t, err)
	require.Equal(t, "store-1", created.Entity.StoreID)
	require.Equal(t, 10, created.Entity.Stock)
	require.Equal(t, "Bic", created.Entity.Attributes.Brand)
	require.Empty(t, created.Entity.Attributes.Color)
	require.False(t, created.Metadata.CreatedAt.IsZero())
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, _ := newTestService()
	input := penInput("store-1")
	input.Price = ptr(decimal.Zero)
	_, err := svc.CreateProduct(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)

	input = penInput("store-1")
	input.IsWholesale = ptr(true)
	_, err = svc.CreateProduct(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrInvalidWholesale)

	input = penInput("store-1")
	input.CategoryID = ptr("missing")
	_, err = svc.CreateProduct(context.Background(), input)
	require.ErrorIs(t, err, ports.ErrCategoryNotFound)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateProduct_IdempotencyReplayAndConflict(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	input := penInput("store-1")
	input.IdempotencyKey = "key-1"

	first, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)
	replay, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)
	require.Equal(t, first.Entity.ID, replay.Entity.ID)

	all, err := repo.List(ctx, ports.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)

	changed := input
	changed.Name = ptr("Pencil")
	_, err = svc.CreateProduct(ctx, changed)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)

	otherStore := input
	otherStore.StoreID = "store-2"
	other, err := svc.CreateProduct(ctx, otherStore)
	require.NoError(t, err)
	require.NotEqual(t, first.Entity.ID, other.Entity.ID)
}

type unavailableIdempotencyStore struct{}

func (unavailableIdempotencyStore) Get(context.Context, string) (*ports.IdempotencyRecord, error) {
	return nil, nil
}

func (unavailableIdempotencyStore) Save(context.Context, ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	return nil, errors.New("redis: connection refused")
}

func TestCreateProduct_FailedKeyClaimLeavesNoProduct(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewService(repo, repo, WithIdempotencyStore(unavailableIdempotencyStore{}))
	ctx := context.Background()
	input := penInput("store-1")
	input.IdempotencyKey = "key-1"

	_, err := svc.CreateProduct(ctx, input)
	require.Error(t, err)

	all, err := repo.List(ctx, ports.ProductFilter{})
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFingerprint_IgnoresDecimalScale(t *testing.T) {
	a := penInput("s1")
	b := penInput("s1")
	b.Price = ptr(decimal.RequireFromString("1.5"))
	fa, err := FingerprintCreateProduct(a)
	require.NoError(t, err)
	fb, err := FingerprintCreateProduct(b)
	require.NoError(t, err)
	require.Equal(t, fa, fb)
}

func TestUpdateAndDelete_RequireOwnership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateProduct(ctx, penInput("store-1"))
	require.NoError(t, err)

	_, err = svc.UpdateProduct(ctx, types.UpdateProductInput{StoreID: "store-2", ID: created.Entity.ID})
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.ErrorIs(t, svc.DeleteProduct(ctx, "store-2", created.Entity.ID), ports.ErrNotFound)

	updated, err := svc.UpdateProduct(ctx, types.UpdateProductInput{
		StoreID: "store-1",
		ID:      created.Entity.ID,
		ProductMutationInput: types.ProductMutationInput{
			Discount:        ptr(decimal.NewFromInt(10)),
			IsWholesale:     ptr(true),
			WholesalePrice:  ptr(decimal.NewFromInt(1)),
			WholesaleMinQty: ptr(20),
		},
	})
	require.NoError(t, err)
	require.Equal(t, "1.35", updated.Entity.UnitPriceFor(1).StringFixed(2))
	require.Equal(t, "1.00", updated.Entity.UnitPriceFor(20).StringFixed(2))

	require.NoError(t, svc.DeleteProduct(ctx, "store-1", created.Entity.ID))
	_, err = svc.GetProduct(ctx, created.Entity.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStockDecrementAndRestore(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateProduct(ctx, penInput("store-1"))
	require.NoError(t, err)

	require.ErrorIs(t, svc.DecrementStock(ctx, created.Entity.ID, 11), domain.ErrInsufficientStock)
	require.NoError(t, svc.DecrementStock(ctx, created.Entity.ID, 10))
	require.ErrorIs(t, svc.DecrementStock(ctx, created.Entity.ID, 1), domain.ErrInsufficientStock)
	require.NoError(t, svc.RestoreStock(ctx, created.Entity.ID, 3))

	got, err := svc.GetProduct(ctx, created.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.Entity.Stock)
	require.ErrorIs(t, svc.DecrementStock(ctx, created.Entity.ID, 0), ErrInvalidInput)
}

func TestListProducts_Filters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	cat, err := svc.CreateCategory(ctx, "Stationery")
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, "stationery")
	require.ErrorIs(t, err, ports.ErrCategoryExists)

	in := penInput("store-1")
	in.CategoryID = ptr(cat.ID)
	_, err = svc.CreateProduct(ctx, in)
	require.NoError(t, err)
	hidden := penInput("store-1")
	hidden.Name = ptr("Hidden eraser")
	hidden.IsActive = ptr(false)
	_, err = svc.CreateProduct(ctx, hidden)
	require.NoError(t, err)

	list, err := svc.ListProducts(ctx, ports.ProductFilter{CategoryID: cat.ID, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = svc.ListProducts(ctx, ports.ProductFilter{Search: " eraser ", ActiveOnly: true})
	require.NoError(t, err)
	require.Empty(t, list)

	seller, err := svc.ListSellerProducts(ctx, "store-1")
	require.NoError(t, err)
	require.Len(t, seller, 2)
}

func TestImageUploadAndAttach(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateProduct(ctx, penInput("store-1"))
	require.NoError(t, err)

	upload, err := svc.RequestImageUpload(ctx, types.ImageUploadInput{StoreID: "store-1", ProductID: created.Entity.ID, Filename: "../../pen.png", ContentType: "image/png"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(upload.Key, "products/store-1/"+created.Entity.ID+"/"))
	require.True(t, strings.HasSuffix(upload.Key, "-pen.png"))

	attached, err := svc.AttachImage(ctx, "store-1", created.Entity.ID, upload.Key)
	require.NoError(t, err)
	require.Equal(t, []string{"https://cdn.test/" + upload.Key}, attached.Entity.Images)

	_, err = svc.AttachImage(ctx, "store-1", created.Entity.ID, "products/other/key.png")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RequestImageUpload(ctx, types.ImageUploadInput{StoreID: "store-2", ProductID: created.Entity.ID, Filename: "x.png"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}
