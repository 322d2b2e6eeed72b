package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source tells where a cart line came from.
type Source string

const (
	SourceProduct    Source = "product"
	SourceSchoolList Source = "school_list"
)

var (
	ErrEmptyOwner      = errors.New("cart owner is required")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrExceedsStock    = errors.New("quantity exceeds available stock")
	ErrItemNotFound    = errors.New("cart item not found")
)

// StockLimitError reports a requested quantity above what the product has in stock.
type StockLimitError struct {
	ProductID string
	Available int
	Requested int
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("quantity exceeds available stock for %s: %d available, %d requested", e.ProductID, e.Available, e.Requested)
}

func (e *StockLimitError) Unwrap() error { return ErrExceedsStock }

// Item is one cart line. MaxStock only bounds product lines.
type Item struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"productId,omitempty"`
	Name            string          `json:"name"`
	Image           string          `json:"image,omitempty"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
	MaxStock        int             `json:"maxStock"`
	WholesalePrice  decimal.Decimal `json:"wholesalePrice"`
	WholesaleMinQty int             `json:"wholesaleMinQty"`
	Source          Source          `json:"source"`
	ListID          string          `json:"listId,omitempty"`
	BesoinID        string          `json:"besoinId,omitempty"`
}

// UnitPriceFor applies the wholesale price once qty reaches the wholesale threshold.
func (i Item) UnitPriceFor(qty int) decimal.Decimal {
	if i.WholesaleMinQty > 0 && i.WholesalePrice.IsPositive() && qty >= i.WholesaleMinQty {
		return i.WholesalePrice
	}
	return i.UnitPrice
}

func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPriceFor(i.Quantity).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i Item) stockBound() bool {
	return i.Source == SourceProduct
}

// SchoolListItemID is the stable line id of a besoin added from a school list.
func SchoolListItemID(listID, besoinID string) string {
	return "liste-" + listID + "-besoin-" + besoinID
}

// Cart belongs to a signed-in user or an anonymous cart token.
type Cart struct {
	OwnerID   string    `json:"ownerId"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func New(ownerID string) (*Cart, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrEmptyOwner
	}
	return &Cart{OwnerID: ownerID, Items: []Item{}}, nil
}

// Item returns a pointer into the cart's line slice.
func (c *Cart) Item(id string) (*Item, bool) {
	for idx := range c.Items {
		if c.Items[idx].ID == id {
			return &c.Items[idx], true
		}
	}
	return nil, false
}

// AddProduct appends a product line or merges it into the existing one,
// refreshing price and stock from the incoming snapshot.
func (c *Cart) AddProduct(item Item, now time.Time) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	item.Source = SourceProduct
	if item.ID == "" {
		item.ID = item.ProductID
	}
	requested := item.Quantity
	existing, ok := c.Item(item.ID)
	if ok {
		requested += existing.Quantity
	}
	if requested > item.MaxStock {
		return &StockLimitError{ProductID: item.ProductID, Available: item.MaxStock, Requested: requested}
	}
	item.Quantity = requested
	if ok {
		*existing = item
	} else {
		c.Items = append(c.Items, item)
	}
	c.UpdatedAt = now
	return nil
}

// AddSchoolLine appends a school list line or increases the quantity of the existing one.
func (c *Cart) AddSchoolLine(item Item, now time.Time) {
	item.Source = SourceSchoolList
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if existing, ok := c.Item(item.ID); ok {
		existing.Quantity += item.Quantity
	} else {
		c.Items = append(c.Items, item)
	}
	c.UpdatedAt = now
}

// SetQuantity removes the line when qty <= 0 and caps product lines at their stock.
func (c *Cart) SetQuantity(id string, qty int, now time.Time) error {
	item, ok := c.Item(id)
	if !ok {
		return ErrItemNotFound
	}
	if qty <= 0 {
		return c.Remove(id, now)
	}
	if item.stockBound() && qty > item.MaxStock {
		qty = item.MaxStock
	}
	if qty <= 0 {
		return c.Remove(id, now)
	}
	item.Quantity = qty
	c.UpdatedAt = now
	return nil
}

func (c *Cart) Remove(id string, now time.Time) error {
	for idx := range c.Items {
		if c.Items[idx].ID == id {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = now
			return nil
		}
	}
	return ErrItemNotFound
}

func (c *Cart) Clear(now time.Time) {
	c.Items = []Item{}
	c.UpdatedAt = now
}

// Totals summarises the cart.
type Totals struct {
	ItemCount int
	Total     decimal.Decimal
}

func (c *Cart) Totals() Totals {
	out := Totals{Total: decimal.Zero}
	for _, item := range c.Items {
		out.ItemCount += item.Quantity
		out.Total = out.Total.Add(item.LineTotal())
	}
	return out
}
