package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/domain"
)

// BesoinInput describes one need of a new list.
type BesoinInput struct {
	NomProduit string
	Quantite   int
	Details    string
}

// CreateListInput is the manager-side list creation payload.
type CreateListInput struct {
	Titre       string
	Description string
	Classe      string
	Besoins     []BesoinInput
}

// ProposeProductInput is a seller offering a product for a besoin.
type ProposeProductInput struct {
	BesoinID  string
	ProductID string
	StoreID   string
	Prix      decimal.Decimal
}

// Service exposes school list use cases.
type Service interface {
	ListPublished(ctx context.Context) ([]*domain.ListeScolaire, error)
	ListAll(ctx context.Context) ([]*domain.ListeScolaire, error)
	GetList(ctx context.Context, id string) (*domain.ListeScolaire, error)
	CreateList(ctx context.Context, input CreateListInput) (*domain.ListeScolaire, error)
	Publish(ctx context.Context, id string) (*domain.ListeScolaire, error)
	Archive(ctx context.Context, id string) (*domain.ListeScolaire, error)
	ProposeProduct(ctx context.Context, input ProposeProductInput) (*domain.ListeScolaire, error)
	ValidateAssociation(ctx context.Context, besoinID, associationID string) (*domain.ListeScolaire, error)
}
