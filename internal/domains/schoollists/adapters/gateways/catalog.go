package gateways

import (
	"context"

	catalogports "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
)

var _ ports.ProductOwnership = (*CatalogOwnership)(nil)

// CatalogOwnership resolves a product's store through the catalog.
type CatalogOwnership struct {
	catalog catalogports.Service
}

func NewCatalogOwnership(catalog catalogports.Service) *CatalogOwnership {
	return &CatalogOwnership{catalog: catalog}
}

func (g *CatalogOwnership) StoreOf(ctx context.Context, productID string) (string, error) {
	projection, err := g.catalog.GetProduct(ctx, productID)
	if err != nil {
		return "", err
	}
	return projection.Entity.StoreID, nil
}
