package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
)

var (
	ErrInvalidInput       = errors.New("invalid user input")
	ErrAuthentication     = errors.New("authentication failed")
	ErrMissingCredentials = errors.New("email and password are required")
)

// Causes folded into ErrInvalidInput and ErrAuthentication respectively.
var (
	inputFailures = []error{
		domain.ErrEmptyName,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyPassword,
		domain.ErrWeakPassword,
		domain.ErrInvalidRole,
		ErrMissingCredentials,
	}
	authFailures = []error{
		ports.ErrInvalidCredentials,
		ports.ErrInvalidToken,
		ports.ErrSessionNotFound,
		ports.ErrOAuthVerification,
	}
)

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case isAny(err, inputFailures):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case isAny(err, authFailures):
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	default:
		return err
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
