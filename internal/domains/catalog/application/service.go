package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo        ports.Repository
	categories  ports.CategoryRepository
	idempotency ports.IdempotencyStore
	storage     ports.ObjectStorage
	logger      *slog.Logger
}

// Option customises the catalog service.
type Option func(*Service)

// WithIdempotencyStore enables Idempotency-Key handling on product creation.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithObjectStorage wires presigned image uploads.
func WithObjectStorage(storage ports.ObjectStorage) Option {
	return func(s *Service) { s.storage = storage }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository, categories ports.CategoryRepository, opts ...Option) *Service {
	s := &Service{repo: repo, categories: categories, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateProduct persists a new product for the seller's store. Replaying an
// idempotency key with the same payload returns the product created first.
func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	var fingerprint string
	if key != "" && s.idempotency != nil {
		var err error
		if fingerprint, err = FingerprintCreateProduct(input); err != nil {
			return nil, err
		}
		key = scopedKey(input.StoreID, key)
		existing, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.RequestHash != fingerprint {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.repo.GetByID(ctx, existing.ProductID)
		}
	}

	product, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	if fingerprint == "" {
		return saved, nil
	}
	stored, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: fingerprint, ProductID: saved.Entity.ID})
	if err == nil {
		return saved, nil
	}
	// The key was not claimed for this product, so it must not outlive the
	// request: a retry would otherwise create a second one.
	s.discardUnclaimed(ctx, saved.Entity.ID)
	if errors.Is(err, ports.ErrIdempotencyConflict) && stored != nil && stored.RequestHash == fingerprint {
		return s.repo.GetByID(ctx, stored.ProductID)
	}
	return nil, err
}

func (s *Service) discardUnclaimed(ctx context.Context, productID string) {
	if err := s.repo.Delete(ctx, productID); err != nil {
		s.logger.ErrorContext(ctx, "unclaimed product not removed", "productId", productID, "error", err)
	}
}

// UpdateProduct applies a partial update to a product owned by the store.
func (s *Service) UpdateProduct(ctx context.Context, input types.UpdateProductInput) (*types.ProductProjection, error) {
	current, err := s.ownedProduct(ctx, input.StoreID, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.applyMutation(ctx, current.Entity, input.ProductMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, current.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteProduct removes a product owned by the store.
func (s *Service) DeleteProduct(ctx context.Context, storeID, id string) error {
	if _, err := s.ownedProduct(ctx, storeID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// GetProduct loads a single product.
func (s *Service) GetProduct(ctx context.Context, id string) (*types.ProductProjection, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// ListProducts returns storefront products matching the filter.
func (s *Service) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]*types.ProductProjection, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

// ListSellerProducts returns every product of a store, including inactive ones.
func (s *Service) ListSellerProducts(ctx context.Context, storeID string) ([]*types.ProductProjection, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, mapError(domain.ErrEmptyStore)
	}
	return s.repo.List(ctx, ports.ProductFilter{StoreID: storeID})
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

// CreateCategory adds a category; names are unique by slug.
func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	category, err := domain.NewCategory(uuid.NewString(), name)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if c.Slug == category.Slug {
			return nil, ports.ErrCategoryExists
		}
	}
	return s.categories.SaveCategory(ctx, category)
}

// RequestImageUpload returns a presigned URL for an image of a product owned by the store.
func (s *Service) RequestImageUpload(ctx context.Context, input types.ImageUploadInput) (*ports.PresignedUpload, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if _, err := s.ownedProduct(ctx, input.StoreID, input.ProductID); err != nil {
		return nil, err
	}
	filename := path.Base(strings.TrimSpace(input.Filename))
	if filename == "." || filename == "/" || filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("products/%s/%s/%s-%s", input.StoreID, input.ProductID, uuid.NewString()[:8], filename)
	return s.storage.PresignUpload(ctx, key, contentType)
}

// AttachImage records an uploaded object as a product image.
func (s *Service) AttachImage(ctx context.Context, storeID, productID, key string) (*types.ProductProjection, error) {
	current, err := s.ownedProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(key, fmt.Sprintf("products/%s/%s/", storeID, productID)) {
		return nil, fmt.Errorf("%w: image key does not belong to this product", ErrInvalidInput)
	}
	image := key
	if s.storage != nil {
		image = s.storage.PublicURL(key)
	}
	current.Entity.AddImage(image)
	return s.repo.Save(ctx, current.Entity)
}

// DecrementStock removes qty units, failing with domain.ErrInsufficientStock when not enough remain.
func (s *Service) DecrementStock(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return mapError(domain.ErrInvalidQuantity)
	}
	return s.repo.DecrementStock(ctx, productID, qty)
}

// RestoreStock compensates a decrement after a failed checkout.
func (s *Service) RestoreStock(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return mapError(domain.ErrInvalidQuantity)
	}
	return s.repo.RestoreStock(ctx, productID, qty)
}

func (s *Service) ownedProduct(ctx context.Context, storeID, id string) (*types.ProductProjection, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if storeID == "" || current.Entity.StoreID != storeID {
		return nil, ports.ErrNotFound
	}
	return current, nil
}

func (s *Service) buildProduct(ctx context.Context, input types.CreateProductInput) (*domain.Product, error) {
	if input.Name == nil {
		return nil, domain.ErrEmptyName
	}
	if input.Price == nil {
		return nil, domain.ErrInvalidPrice
	}
	product, err := domain.NewProduct(uuid.NewString(), input.StoreID, *input.Name, *input.Price)
	if err != nil {
		return nil, err
	}
	partial := input.ProductMutationInput
	partial.Name = nil
	if err := s.applyMutation(ctx, product, partial); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) applyMutation(ctx context.Context, target *domain.Product, input types.ProductMutationInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Description != nil {
		target.Description = strings.TrimSpace(*input.Description)
	}
	if input.Barcode != nil {
		target.Barcode = strings.TrimSpace(*input.Barcode)
	}
	if input.CategoryID != nil {
		categoryID := strings.TrimSpace(*input.CategoryID)
		if categoryID != "" && s.categories != nil {
			if _, err := s.categories.GetCategory(ctx, categoryID); err != nil {
				return err
			}
		}
		target.CategoryID = categoryID
	}
	if input.Price != nil || input.Discount != nil {
		price, discount := target.Price, target.Discount
		if input.Price != nil {
			price = *input.Price
		}
		if input.Discount != nil {
			discount = *input.Discount
		}
		if err := target.Reprice(price, discount); err != nil {
			return err
		}
	}
	if input.IsWholesale != nil || input.WholesalePrice != nil || input.WholesaleMinQty != nil {
		enabled, price, minQty := target.IsWholesale, target.WholesalePrice, target.WholesaleMinQty
		if input.IsWholesale != nil {
			enabled = *input.IsWholesale
		}
		if input.WholesalePrice != nil {
			price = *input.WholesalePrice
		}
		if input.WholesaleMinQty != nil {
			minQty = *input.WholesaleMinQty
		}
		if err := target.ConfigureWholesale(enabled, price, minQty); err != nil {
			return err
		}
	}
	if input.Stock != nil {
		if err := target.SetStock(*input.Stock); err != nil {
			return err
		}
	}
	if input.Images != nil {
		target.ReplaceImages(*input.Images)
	}
	if input.Tags != nil {
		target.ReplaceTags(*input.Tags)
	}
	if input.Attributes != nil {
		target.UpdateAttributes(*input.Attributes)
	}
	if input.IsActive != nil {
		target.IsActive = *input.IsActive
	}
	return nil
}

func scopedKey(storeID, key string) string {
	return storeID + ":" + key
}

var _ ports.Service = (*Service)(nil)
