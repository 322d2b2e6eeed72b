package gateways

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
)

var _ ports.ProductLookup = (*CatalogProducts)(nil)

// CatalogProducts adapts the catalog service to the cart ProductLookup port.
type CatalogProducts struct {
	catalog catalogports.Service
}

func NewCatalogProducts(catalog catalogports.Service) *CatalogProducts {
	return &CatalogProducts{catalog: catalog}
}

func (g *CatalogProducts) Lookup(ctx context.Context, productID string) (*ports.ProductSnapshot, error) {
	projection, err := g.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	product := projection.Entity
	if product == nil || !product.IsActive {
		return nil, ports.ErrProductNotFound
	}
	snapshot := &ports.ProductSnapshot{
		ID:    product.ID,
		Name:  product.Name,
		Image: product.PrimaryImage(),
		Price: product.SalePrice(),
		Stock: product.Stock,
	}
	if product.IsWholesale {
		snapshot.WholesalePrice = product.WholesalePrice
		snapshot.WholesaleMinQty = product.WholesaleMinQty
	}
	return snapshot, nil
}
