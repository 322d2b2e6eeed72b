package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	catalogtypes "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
)

// Attributes is the optional descriptive block of a product.
type Attributes struct {
	Brand      string `json:"brand,omitempty"`
	Color      string `json:"color,omitempty"`
	Material   string `json:"material,omitempty"`
	Size       string `json:"size,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
	Pages      string `json:"pages,omitempty"`
	Level      string `json:"level,omitempty"`
	Collection string `json:"collection,omitempty"`
	Author     string `json:"author,omitempty"`
	Language   string `json:"language,omitempty"`
}

// MutationProduct captures inbound create/update payloads while preserving field presence.
type MutationProduct struct {
	Name            *string     `json:"name,omitempty" binding:"omitempty,max=200"`
	Description     *string     `json:"description,omitempty"`
	Barcode         *string     `json:"barcode,omitempty" binding:"omitempty,max=64"`
	CategoryID      *string     `json:"categoryId,omitempty"`
	Price           *float64    `json:"price,omitempty" binding:"omitempty,gt=0"`
	Discount        *float64    `json:"discount,omitempty" binding:"omitempty,gte=0,lte=100"`
	IsWholesale     *bool       `json:"isWholesale,omitempty"`
	WholesalePrice  *float64    `json:"wholesalePrice,omitempty" binding:"omitempty,gte=0"`
	WholesaleMinQty *int        `json:"wholesaleMinQty,omitempty" binding:"omitempty,gte=0"`
	Stock           *int        `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Images          *[]string   `json:"images,omitempty"`
	Tags            *[]string   `json:"tags,omitempty"`
	Attributes      *Attributes `json:"attributes,omitempty"`
	IsActive        *bool       `json:"isActive,omitempty"`
}

// Product is the HTTP representation of a catalog product.
type Product struct {
	ID              string     `json:"id"`
	StoreID         string     `json:"storeId"`
	CategoryID      string     `json:"categoryId,omitempty"`
	Name            string     `json:"name"`
	Barcode         string     `json:"barcode,omitempty"`
	Description     string     `json:"description,omitempty"`
	Price           float64    `json:"price"`
	Discount        float64    `json:"discount"`
	FinalPrice      float64    `json:"finalPrice"`
	IsWholesale     bool       `json:"isWholesale"`
	WholesalePrice  float64    `json:"wholesalePrice,omitempty"`
	WholesaleMinQty int        `json:"wholesaleMinQty,omitempty"`
	Stock           int        `json:"stock"`
	Images          []string   `json:"images"`
	Tags            []string   `json:"tags"`
	Attributes      Attributes `json:"attributes"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// Category is the HTTP representation of a product category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ToMutationInput converts the payload into the application mutation input.
func ToMutationInput(m MutationProduct) catalogtypes.ProductMutationInput {
	input := catalogtypes.ProductMutationInput{
		Name:            m.Name,
		Description:     m.Description,
		Barcode:         m.Barcode,
		CategoryID:      m.CategoryID,
		Price:           toDecimal(m.Price),
		Discount:        toDecimal(m.Discount),
		IsWholesale:     m.IsWholesale,
		WholesalePrice:  toDecimal(m.WholesalePrice),
		WholesaleMinQty: m.WholesaleMinQty,
		Stock:           m.Stock,
		Images:          m.Images,
		Tags:            m.Tags,
		IsActive:        m.IsActive,
	}
	if m.Attributes != nil {
		attrs := domain.Attributes(*m.Attributes)
		input.Attributes = &attrs
	}
	return input
}

// FromProjection converts an application projection into its HTTP representation.
func FromProjection(p *catalogtypes.ProductProjection) Product {
	if p == nil || p.Entity == nil {
		return Product{}
	}
	out := FromDomainProduct(p.Entity)
	if !p.Metadata.CreatedAt.IsZero() {
		created := p.Metadata.CreatedAt.UTC()
		out.CreatedAt = &created
	}
	if !p.Metadata.UpdatedAt.IsZero() {
		updated := p.Metadata.UpdatedAt.UTC()
		out.UpdatedAt = &updated
	}
	return out
}

// FromProjections converts a list of projections.
func FromProjections(list []*catalogtypes.ProductProjection) []Product {
	out := make([]Product, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}

// FromDomainProduct converts a domain product into its HTTP representation.
func FromDomainProduct(p *domain.Product) Product {
	return Product{
		ID:              p.ID,
		StoreID:         p.StoreID,
		CategoryID:      p.CategoryID,
		Name:            p.Name,
		Barcode:         p.Barcode,
		Description:     p.Description,
		Price:           p.Price.InexactFloat64(),
		Discount:        p.Discount.InexactFloat64(),
		FinalPrice:      p.SalePrice().InexactFloat64(),
		IsWholesale:     p.IsWholesale,
		WholesalePrice:  p.WholesalePrice.InexactFloat64(),
		WholesaleMinQty: p.WholesaleMinQty,
		Stock:           p.Stock,
		Images:          append([]string{}, p.Images...),
		Tags:            append([]string{}, p.Tags...),
		Attributes:      Attributes(p.Attributes),
		IsActive:        p.IsActive,
	}
}

// FromDomainCategories converts categories for transport.
func FromDomainCategories(list []*domain.Category) []Category {
	out := make([]Category, 0, len(list))
	for _, c := range list {
		out = append(out, FromDomainCategory(c))
	}
	return out
}

func FromDomainCategory(c *domain.Category) Category {
	if c == nil {
		return Category{}
	}
	return Category{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func toDecimal(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
