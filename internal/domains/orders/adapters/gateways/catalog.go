package gateways

import (
	"context"
	"errors"

	catalogdomain "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

var _ ports.Inventory = (*CatalogInventory)(nil)

// CatalogInventory adapts the catalog service to the orders Inventory port.
type CatalogInventory struct {
	catalog catalogports.Service
}

func NewCatalogInventory(catalog catalogports.Service) *CatalogInventory {
	return &CatalogInventory{catalog: catalog}
}

func (g *CatalogInventory) Quote(ctx context.Context, productID string, qty int) (*ports.ProductQuote, error) {
	projection, err := g.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, translate(err)
	}
	product := projection.Entity
	if product == nil || !product.IsActive {
		return nil, ports.ErrProductNotFound
	}
	return &ports.ProductQuote{
		ProductID: product.ID,
		StoreID:   product.StoreID,
		Name:      product.Name,
		Image:     product.PrimaryImage(),
		Stock:     product.Stock,
		UnitPrice: product.UnitPriceFor(qty),
	}, nil
}

func (g *CatalogInventory) Decrement(ctx context.Context, productID string, qty int) error {
	return translate(g.catalog.DecrementStock(ctx, productID, qty))
}

func (g *CatalogInventory) Restore(ctx context.Context, productID string, qty int) error {
	return translate(g.catalog.RestoreStock(ctx, productID, qty))
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalogports.ErrNotFound):
		return ports.ErrProductNotFound
	case errors.Is(err, catalogdomain.ErrInsufficientStock):
		return ports.ErrInsufficientStock
	default:
		return err
	}
}
