package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrSchoolListNotFound = errors.New("school list not found")
)

// ProductSnapshot is the catalog data a cart line copies.
type ProductSnapshot struct {
	ID              string
	Name            string
	Image           string
	Price           decimal.Decimal
	Stock           int
	WholesalePrice  decimal.Decimal
	WholesaleMinQty int
}

// ProductLookup resolves sellable products; inactive products are not found.
type ProductLookup interface {
	Lookup(ctx context.Context, productID string) (*ProductSnapshot, error)
}

// SchoolListLine is one besoin of a published list. Priced is false when no
// association has been validated yet.
type SchoolListLine struct {
	BesoinID   string
	NomProduit string
	Quantite   int
	Price      decimal.Decimal
	Priced     bool
}

// SchoolLists reads published school lists.
type SchoolLists interface {
	PublishedLines(ctx context.Context, listID string) ([]SchoolListLine, error)
}
