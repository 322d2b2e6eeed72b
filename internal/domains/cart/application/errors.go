package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"
)

var ErrInvalidInput = errors.New("invalid input")

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrEmptyOwner),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrExceedsStock):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
