package application

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/ports"
)

// DefaultSchoolListPrice is charged for besoins without a validated association.
var DefaultSchoolListPrice = decimal.NewFromInt(5)

// Service implements the cart use cases on top of a CartStore.
type Service struct {
	store    ports.CartStore
	products ports.ProductLookup
	lists    ports.SchoolLists
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store ports.CartStore, products ports.ProductLookup, lists ports.SchoolLists, opts ...Option) *Service {
	s := &Service{store: store, products: products, lists: lists, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Get(ctx context.Context, ownerID string) (*domain.Cart, error) {
	return s.load(ctx, ownerID)
}

// AddProduct adds qty units of a product, merging with an existing line. qty <= 0 adds one unit.
func (s *Service) AddProduct(ctx context.Context, ownerID, productID string, qty int) (*domain.Cart, error) {
	if qty <= 0 {
		qty = 1
	}
	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.Lookup(ctx, strings.TrimSpace(productID))
	if err != nil {
		return nil, err
	}
	item := domain.Item{
		ID:              product.ID,
		ProductID:       product.ID,
		Name:            product.Name,
		Image:           product.Image,
		UnitPrice:       product.Price,
		Quantity:        qty,
		MaxStock:        product.Stock,
		WholesalePrice:  product.WholesalePrice,
		WholesaleMinQty: product.WholesaleMinQty,
	}
	if err := cart.AddProduct(item, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, cart)
}

// AddSchoolList adds every besoin of a published list as its own line.
func (s *Service) AddSchoolList(ctx context.Context, ownerID, listID string) (*domain.Cart, error) {
	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	listID = strings.TrimSpace(listID)
	lines, err := s.lists.PublishedLines(ctx, listID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	for _, line := range lines {
		price := line.Price
		if !line.Priced {
			price = DefaultSchoolListPrice
		}
		qty := line.Quantite
		if qty <= 0 {
			qty = 1
		}
		cart.AddSchoolLine(domain.Item{
			ID:        domain.SchoolListItemID(listID, line.BesoinID),
			Name:      line.NomProduit,
			UnitPrice: price,
			Quantity:  qty,
			ListID:    listID,
			BesoinID:  line.BesoinID,
		}, now)
	}
	return s.save(ctx, cart)
}

// UpdateQuantity sets a line quantity; qty <= 0 removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, ownerID, itemID string, qty int) (*domain.Cart, error) {
	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(itemID, qty, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, cart)
}

func (s *Service) RemoveItem(ctx context.Context, ownerID, itemID string) (*domain.Cart, error) {
	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := cart.Remove(itemID, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, cart)
}

func (s *Service) Clear(ctx context.Context, ownerID string) (*domain.Cart, error) {
	cart, err := domain.New(ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.store.Delete(ctx, cart.OwnerID); err != nil {
		return nil, err
	}
	cart.Clear(s.now().UTC())
	return cart, nil
}

func (s *Service) load(ctx context.Context, ownerID string) (*domain.Cart, error) {
	empty, err := domain.New(ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	cart, err := s.store.Load(ctx, empty.OwnerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return empty, nil
	}
	return cart, nil
}

func (s *Service) save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

var _ ports.Service = (*Service)(nil)
