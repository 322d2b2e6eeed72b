package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps school lists in memory.
type Repository struct {
	mu     sync.RWMutex
	listes map[string]*domain.ListeScolaire
}

func NewRepository() *Repository {
	return &Repository{listes: map[string]*domain.ListeScolaire{}}
}

func (r *Repository) Save(_ context.Context, liste *domain.ListeScolaire) (*domain.ListeScolaire, error) {
	if liste == nil {
		return nil, errors.New("school list is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listes[liste.ID] = clone(liste)
	return clone(liste), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.ListeScolaire, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	liste, ok := r.listes[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(liste), nil
}

func (r *Repository) GetByBesoin(_ context.Context, besoinID string) (*domain.ListeScolaire, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, liste := range r.listes {
		for _, b := range liste.Besoins {
			if b.ID == besoinID {
				return clone(liste), nil
			}
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) List(_ context.Context, statut domain.Statut) ([]*domain.ListeScolaire, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.ListeScolaire, 0, len(r.listes))
	for _, liste := range r.listes {
		if statut == "" || liste.Statut == statut {
			list = append(list, clone(liste))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func clone(liste *domain.ListeScolaire) *domain.ListeScolaire {
	out := *liste
	out.Besoins = make([]domain.Besoin, len(liste.Besoins))
	for i, b := range liste.Besoins {
		b.Associations = append([]domain.Association{}, b.Associations...)
		out.Besoins[i] = b
	}
	return &out
}
