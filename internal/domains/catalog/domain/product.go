package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("product name is required")
	ErrEmptyStore        = errors.New("product must belong to a store")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrInvalidDiscount   = errors.New("discount must be between 0 and 100")
	ErrInvalidWholesale  = errors.New("wholesale products need a wholesale price above zero and a minimum quantity of at least 1")
	ErrNegativeStock     = errors.New("stock must not be negative")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// placeholderValue is what the seller dashboard submits for attributes left blank.
const placeholderValue = "Undefined"

var hundred = decimal.NewFromInt(100)

// Attributes carries optional descriptive fields shown on the product page.
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

// Normalize trims every field and drops the "Undefined" placeholder.
func (a Attributes) Normalize() Attributes {
	clean := func(v string) string {
		v = strings.TrimSpace(v)
		if strings.EqualFold(v, placeholderValue) {
			return ""
		}
		return v
	}
	return Attributes{
		Brand:      clean(a.Brand),
		Color:      clean(a.Color),
		Material:   clean(a.Material),
		Size:       clean(a.Size),
		Dimensions: clean(a.Dimensions),
		Pages:      clean(a.Pages),
		Level:      clean(a.Level),
		Collection: clean(a.Collection),
		Author:     clean(a.Author),
		Language:   clean(a.Language),
	}
}

// Product is the catalog aggregate owned by a single store.
type Product struct {
	ID              string
	StoreID         string
	CategoryID      string
	Name            string
	Barcode         string
	Description     string
	Price           decimal.Decimal
	Discount        decimal.Decimal
	IsWholesale     bool
	WholesalePrice  decimal.Decimal
	WholesaleMinQty int
	Stock           int
	Images          []string
	Tags            []string
	Attributes      Attributes
	IsActive        bool
}

// NewProduct validates the mandatory fields of a product.
func NewProduct(id, storeID, name string, price decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, ErrEmptyStore
	}
	p := &Product{ID: id, StoreID: storeID, IsActive: true}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Reprice(price, decimal.Zero); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename trims and validates the product name.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice sets the list price and the percentage discount.
func (p *Product) Reprice(price, discount decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	p.Price = price
	p.Discount = discount
	return nil
}

// ConfigureWholesale enables or disables the bulk price tier.
func (p *Product) ConfigureWholesale(enabled bool, price decimal.Decimal, minQty int) error {
	if !enabled {
		p.IsWholesale = false
		p.WholesalePrice = decimal.Zero
		p.WholesaleMinQty = 0
		return nil
	}
	if !price.IsPositive() || minQty < 1 {
		return ErrInvalidWholesale
	}
	p.IsWholesale = true
	p.WholesalePrice = price
	p.WholesaleMinQty = minQty
	return nil
}

// SetStock replaces the available quantity.
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.Stock = stock
	return nil
}

// Decrement removes qty units, refusing to go below zero.
func (p *Product) Decrement(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if p.Stock < qty {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

// Restore returns qty units to stock.
func (p *Product) Restore(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	p.Stock += qty
	return nil
}

func (p *Product) ReplaceImages(images []string) {
	p.Images = compact(images)
}

// AddImage appends an image key unless it is already attached.
func (p *Product) AddImage(key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	for _, existing := range p.Images {
		if existing == key {
			return
		}
	}
	p.Images = append(p.Images, key)
}

func (p *Product) ReplaceTags(tags []string) {
	p.Tags = compact(tags)
}

func (p *Product) UpdateAttributes(attrs Attributes) {
	p.Attributes = attrs.Normalize()
}

// SalePrice is the list price after the percentage discount, rounded to cents.
func (p *Product) SalePrice() decimal.Decimal {
	if p.Discount.IsZero() {
		return p.Price
	}
	factor := hundred.Sub(p.Discount).Div(hundred)
	return p.Price.Mul(factor).Round(2)
}

// UnitPriceFor returns the price applied to a line of qty units.
func (p *Product) UnitPriceFor(qty int) decimal.Decimal {
	if p.IsWholesale && p.WholesalePrice.IsPositive() && p.WholesaleMinQty > 0 && qty >= p.WholesaleMinQty {
		return p.WholesalePrice
	}
	return p.SalePrice()
}

// PrimaryImage returns the first image or an empty string.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
