package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GlobalStatisticID keys the single platform statistics row.
const GlobalStatisticID = "global"

var (
	ErrEmptyOwner     = errors.New("store owner is required")
	ErrEmptyName      = errors.New("store name is required")
	ErrNegativeAmount = errors.New("sale amount must not be negative")
)

// Store is a seller's shop and its running revenue ledger.
type Store struct {
	ID         string
	OwnerID    string
	Name       string
	Revenue    decimal.Decimal
	TotalSales int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewStore validates the owner and name of a new store.
func NewStore(id, ownerID, name string) (*Store, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrEmptyOwner
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Store{ID: id, OwnerID: ownerID, Name: name, Revenue: decimal.Zero}, nil
}

// RecordSale adds a paid order to the ledger.
func (s *Store) RecordSale(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	s.Revenue = s.Revenue.Add(amount)
	s.TotalSales++
	return nil
}

// ReverseSale removes a refunded order, clamping both counters at zero.
func (s *Store) ReverseSale(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	s.Revenue = decimal.Max(decimal.Zero, s.Revenue.Sub(amount))
	if s.TotalSales > 0 {
		s.TotalSales--
	}
	return nil
}

// PlatformStatistic aggregates revenue across every store.
type PlatformStatistic struct {
	ID           string
	TotalRevenue decimal.Decimal
	TotalOrders  int64
	UpdatedAt    time.Time
}

// NewPlatformStatistic returns the zeroed singleton.
func NewPlatformStatistic() *PlatformStatistic {
	return &PlatformStatistic{ID: GlobalStatisticID, TotalRevenue: decimal.Zero}
}

func (p *PlatformStatistic) RecordSale(amount decimal.Decimal) {
	p.TotalRevenue = p.TotalRevenue.Add(amount)
	p.TotalOrders++
}

func (p *PlatformStatistic) ReverseSale(amount decimal.Decimal) {
	p.TotalRevenue = decimal.Max(decimal.Zero, p.TotalRevenue.Sub(amount))
	if p.TotalOrders > 0 {
		p.TotalOrders--
	}
}
