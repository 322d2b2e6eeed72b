package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/domain"
)

var ErrNotFound = errors.New("school list not found")

// Repository persists school lists with their besoins and associations.
type Repository interface {
	Save(ctx context.Context, liste *domain.ListeScolaire) (*domain.ListeScolaire, error)
	GetByID(ctx context.Context, id string) (*domain.ListeScolaire, error)
	// GetByBesoin returns the list containing the given besoin.
	GetByBesoin(ctx context.Context, besoinID string) (*domain.ListeScolaire, error)
	// List returns lists newest first; an empty statut returns all.
	List(ctx context.Context, statut domain.Statut) ([]*domain.ListeScolaire, error)
}

// ProductOwnership checks which store sells a product.
type ProductOwnership interface {
	StoreOf(ctx context.Context, productID string) (string, error)
}
