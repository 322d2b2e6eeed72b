package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-marketplace/internal/shared/projection"
)

var (
	_ ports.Repository         = (*Repository)(nil)
	_ ports.CategoryRepository = (*Repository)(nil)
)

type entry struct {
	product  domain.Product
	metadata projection.Metadata
}

// Repository keeps products and categories in memory for development and tests.
type Repository struct {
	mu         sync.RWMutex
	products   map[string]*entry
	categories map[string]domain.Category
	now        func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		products:   map[string]*entry{},
		categories: map[string]domain.Category{},
		now:        time.Now,
	}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if product == nil {
		return nil, errors.New("cannot save nil product")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	e, ok := r.products[product.ID]
	if !ok {
		e = &entry{}
		r.products[product.ID] = e
	}
	e.product = cloneProduct(*product)
	e.metadata = e.metadata.Touch(now)
	return e.view(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return e.view(), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ProductFilter) ([]*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(filter.Search)
	list := make([]*projection.Projection[*domain.Product], 0, len(r.products))
	for _, e := range r.products {
		p := e.product
		if filter.StoreID != "" && p.StoreID != filter.StoreID {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		list = append(list, e.view())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Metadata.CreatedAt.After(list[j].Metadata.CreatedAt)
	})
	return list, nil
}

func (r *Repository) DecrementStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	if err := e.product.Decrement(qty); err != nil {
		return err
	}
	e.metadata.UpdatedAt = r.now()
	return nil
}

func (r *Repository) RestoreStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	if err := e.product.Restore(qty); err != nil {
		return err
	}
	e.metadata.UpdatedAt = r.now()
	return nil
}

func (r *Repository) SaveCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("cannot save nil category")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = *category
	out := *category
	return &out, nil
}

func (r *Repository) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, ports.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *Repository) ListCategories(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (e *entry) view() *projection.Projection[*domain.Product] {
	p := cloneProduct(e.product)
	return &projection.Projection[*domain.Product]{Entity: &p, Metadata: e.metadata}
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Tags = append([]string(nil), p.Tags...)
	return p
}
