package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
)

// Service orchestrates school list use cases.
type Service struct {
	repo     ports.Repository
	products ports.ProductOwnership
	now      func() time.Time
}

type Option func(*Service)

// WithProductOwnership makes ProposeProduct check the product's store.
func WithProductOwnership(products ports.ProductOwnership) Option {
	return func(s *Service) { s.products = products }
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListPublished returns the lists visible to sellers and customers.
func (s *Service) ListPublished(ctx context.Context) ([]*domain.ListeScolaire, error) {
	return s.repo.List(ctx, domain.StatutPubliee)
}

// ListAll is the manager view including drafts and archives.
func (s *Service) ListAll(ctx context.Context) ([]*domain.ListeScolaire, error) {
	return s.repo.List(ctx, "")
}

// GetList returns a published list.
func (s *Service) GetList(ctx context.Context, id string) (*domain.ListeScolaire, error) {
	liste, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if !liste.IsPublished() {
		return nil, ports.ErrNotFound
	}
	return liste, nil
}

func (s *Service) CreateList(ctx context.Context, input ports.CreateListInput) (*domain.ListeScolaire, error) {
	liste, err := domain.NewListe(uuid.NewString(), input.Titre, input.Description, input.Classe)
	if err != nil {
		return nil, mapError(err)
	}
	for _, b := range input.Besoins {
		if err := liste.AddBesoin(uuid.NewString(), b.NomProduit, b.Quantite, b.Details); err != nil {
			return nil, mapError(err)
		}
	}
	now := s.now().UTC()
	liste.CreatedAt, liste.UpdatedAt = now, now
	return s.repo.Save(ctx, liste)
}

func (s *Service) Publish(ctx context.Context, id string) (*domain.ListeScolaire, error) {
	liste, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := liste.Publish(s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, liste)
}

func (s *Service) Archive(ctx context.Context, id string) (*domain.ListeScolaire, error) {
	liste, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	liste.Archive(s.now().UTC())
	return s.repo.Save(ctx, liste)
}

// ProposeProduct lets a seller associate one of their products with a besoin.
func (s *Service) ProposeProduct(ctx context.Context, input ports.ProposeProductInput) (*domain.ListeScolaire, error) {
	if s.products != nil {
		storeID, err := s.products.StoreOf(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		if storeID != input.StoreID {
			return nil, mapError(ErrForeignProduct)
		}
	}
	liste, err := s.repo.GetByBesoin(ctx, input.BesoinID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.ErrBesoinNotFound
		}
		return nil, err
	}
	association := domain.Association{
		ID:        uuid.NewString(),
		ProductID: input.ProductID,
		StoreID:   input.StoreID,
		Prix:      input.Prix,
		CreatedAt: s.now().UTC(),
	}
	if err := liste.Propose(input.BesoinID, association); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, liste)
}

// ValidateAssociation accepts a seller proposal on the manager side.
func (s *Service) ValidateAssociation(ctx context.Context, besoinID, associationID string) (*domain.ListeScolaire, error) {
	liste, err := s.repo.GetByBesoin(ctx, besoinID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.ErrBesoinNotFound
		}
		return nil, err
	}
	if err := liste.Validate(besoinID, associationID, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, liste)
}

var _ ports.Service = (*Service)(nil)
