package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/ports"
)

// ErrInvalidInput signals a store request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid store input")

// Service exposes stores bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateStore opens a store for the owner. An owner keeps a single store.
func (s *Service) CreateStore(ctx context.Context, ownerID, name string) (*domain.Store, error) {
	store, err := domain.NewStore(uuid.NewString(), ownerID, name)
	if err != nil {
		return nil, mapError(err)
	}
	if existing, err := s.repo.GetByOwner(ctx, store.OwnerID); err == nil {
		return existing, nil
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, store)
}

// ProvisionStore satisfies the identity context's provisioning port.
func (s *Service) ProvisionStore(ctx context.Context, ownerID, name string) (string, error) {
	store, err := s.CreateStore(ctx, ownerID, name)
	if err != nil {
		return "", err
	}
	return store.ID, nil
}

func (s *Service) GetStore(ctx context.Context, id string) (*domain.Store, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) GetStoreByOwner(ctx context.Context, ownerID string) (*domain.Store, error) {
	return s.repo.GetByOwner(ctx, strings.TrimSpace(ownerID))
}

// RecordSale credits a paid order to the store and the platform statistic.
func (s *Service) RecordSale(ctx context.Context, storeID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return mapError(domain.ErrNegativeAmount)
	}
	return s.repo.RecordSale(ctx, storeID, amount)
}

// ReverseSale debits a refunded order; counters never drop below zero.
func (s *Service) ReverseSale(ctx context.Context, storeID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return mapError(domain.ErrNegativeAmount)
	}
	return s.repo.ReverseSale(ctx, storeID, amount)
}

func (s *Service) Statistics(ctx context.Context) (*domain.PlatformStatistic, error) {
	return s.repo.Statistics(ctx)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOwner) || errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrNegativeAmount) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
