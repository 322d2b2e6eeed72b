package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-marketplace/internal/shared/projection"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

// ProductFilter narrows storefront and seller listings. Empty fields do not filter.
type ProductFilter struct {
	CategoryID string
	StoreID    string
	Search     string
	ActiveOnly bool
}

// Repository persists products.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Product], error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*projection.Projection[*domain.Product], error)
	// DecrementStock removes qty units only when at least qty are available.
	DecrementStock(ctx context.Context, id string, qty int) error
	RestoreStock(ctx context.Context, id string, qty int) error
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
