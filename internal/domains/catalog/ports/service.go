package ports

import (
	"context"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters (inbound/driving port).
type Service interface {
	CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error)
	UpdateProduct(ctx context.Context, input types.UpdateProductInput) (*types.ProductProjection, error)
	DeleteProduct(ctx context.Context, storeID, id string) error
	GetProduct(ctx context.Context, id string) (*types.ProductProjection, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*types.ProductProjection, error)
	ListSellerProducts(ctx context.Context, storeID string) ([]*types.ProductProjection, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	RequestImageUpload(ctx context.Context, input types.ImageUploadInput) (*PresignedUpload, error)
	AttachImage(ctx context.Context, storeID, productID, key string) (*types.ProductProjection, error)
	DecrementStock(ctx context.Context, productID string, qty int) error
	RestoreStock(ctx context.Context, productID string, qty int) error
}
