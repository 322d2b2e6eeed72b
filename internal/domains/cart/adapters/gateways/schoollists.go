package gateways

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/ports"
	schoolports "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
)

var _ ports.SchoolLists = (*PublishedSchoolLists)(nil)

// PublishedSchoolLists reads besoins of published lists for the cart.
type PublishedSchoolLists struct {
	lists schoolports.Service
}

func NewPublishedSchoolLists(lists schoolports.Service) *PublishedSchoolLists {
	return &PublishedSchoolLists{lists: lists}
}

func (g *PublishedSchoolLists) PublishedLines(ctx context.Context, listID string) ([]ports.SchoolListLine, error) {
	liste, err := g.lists.GetList(ctx, listID)
	if err != nil {
		if errors.Is(err, schoolports.ErrNotFound) {
			return nil, ports.ErrSchoolListNotFound
		}
		return nil, err
	}
	lines := make([]ports.SchoolListLine, 0, len(liste.Besoins))
	for _, b := range liste.Besoins {
		price, ok := b.ValidatedPrice()
		lines = append(lines, ports.SchoolListLine{
			BesoinID:   b.ID,
			NomProduit: b.NomProduit,
			Quantite:   b.Quantite,
			Price:      price,
			Priced:     ok,
		})
	}
	return lines, nil
}
