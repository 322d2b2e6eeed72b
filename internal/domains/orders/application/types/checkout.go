package types

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
)

// CustomerInfo identifies a guest buying without a session.
type CustomerInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CheckoutLine is one requested product and quantity.
type CheckoutLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutInput is the cart submitted at checkout. Prices are resolved server side.
type CheckoutInput struct {
	CustomerID      string                 `json:"customerId,omitempty"`
	CustomerInfo    *CustomerInfo          `json:"customerInfo,omitempty"`
	Items           []CheckoutLine         `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	Total           *decimal.Decimal       `json:"total,omitempty"`
	PaymentMethod   string                 `json:"paymentMethod"`
	IdempotencyKey  string                 `json:"idempotencyKey,omitempty"`
	// PlacementID makes order ids deterministic so a retried placement
	// returns the orders it already stored.
	PlacementID string `json:"placementId,omitempty"`
}

// MergedLines normalises quantities (≤0 becomes 1) and folds duplicate products
// together, keeping first-seen order.
func (in CheckoutInput) MergedLines() []CheckoutLine {
	merged := make([]CheckoutLine, 0, len(in.Items))
	index := map[string]int{}
	for _, line := range in.Items {
		id := strings.TrimSpace(line.ProductID)
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		if pos, ok := index[id]; ok {
			merged[pos].Quantity += qty
			continue
		}
		index[id] = len(merged)
		merged = append(merged, CheckoutLine{ProductID: id, Quantity: qty})
	}
	return merged
}

// CheckoutResult lists the per-store orders created by a checkout.
type CheckoutResult struct {
	Orders []*domain.Order `json:"orders"`
}

// OrderRef is the compact reference returned to the storefront.
type OrderRef struct {
	ID      string `json:"id"`
	Number  string `json:"number"`
	StoreID string `json:"storeId"`
}

// Refs returns one reference per created order.
func (r *CheckoutResult) Refs() []OrderRef {
	if r == nil {
		return nil
	}
	refs := make([]OrderRef, 0, len(r.Orders))
	for _, o := range r.Orders {
		refs = append(refs, OrderRef{ID: o.ID, Number: o.Number, StoreID: o.StoreID})
	}
	return refs
}

// CancelResult reports the cancelled order and whether it was refunded.
type CancelResult struct {
	Order    *domain.Order
	Refunded bool
}
