package types

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-marketplace/internal/shared/projection"
)

// ProductProjection transports a product together with its persistence metadata.
type ProductProjection = projection.Projection[*domain.Product]

// AttributesInput mirrors domain.Attributes for transport mapping.
type AttributesInput = domain.Attributes

// ProductMutationInput captures optional fields for create and partial update.
type ProductMutationInput struct {
	Name            *string
	Description     *string
	Barcode         *string
	CategoryID      *string
	Price           *decimal.Decimal
	Discount        *decimal.Decimal
	IsWholesale     *bool
	WholesalePrice  *decimal.Decimal
	WholesaleMinQty *int
	Stock           *int
	Images          *[]string
	Tags            *[]string
	Attributes      *AttributesInput
	IsActive        *bool
}

// CreateProductInput describes a seller creating a product in their store.
type CreateProductInput struct {
	StoreID        string
	IdempotencyKey string
	ProductMutationInput
}

// UpdateProductInput describes a seller editing one of their products.
type UpdateProductInput struct {
	StoreID string
	ID      string
	ProductMutationInput
}

// ImageUploadInput asks for a presigned URL to upload a product image.
type ImageUploadInput struct {
	StoreID     string
	ProductID   string
	Filename    string
	ContentType string
}
