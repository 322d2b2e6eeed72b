package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/domain"
)

var (
	// ErrInvalidInput signals the request violated a school list invariant.
	ErrInvalidInput = errors.New("invalid school list input")
	// ErrForeignProduct is returned when a seller proposes another store's product.
	ErrForeignProduct = errors.New("product does not belong to the seller's store")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyTitre) ||
		errors.Is(err, domain.ErrEmptyNomProduit) ||
		errors.Is(err, domain.ErrInvalidQuantite) ||
		errors.Is(err, domain.ErrNoBesoins) ||
		errors.Is(err, domain.ErrNotPublished) ||
		errors.Is(err, domain.ErrArchived) ||
		errors.Is(err, domain.ErrAlreadyProposed) ||
		errors.Is(err, domain.ErrInvalidPrix) ||
		errors.Is(err, ErrForeignProduct) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
