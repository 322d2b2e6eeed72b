package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression. French and English terminal tags coexist in stored data.
type Status string

const (
	StatusPending   Status = "EN_ATTENTE"
	StatusConfirmed Status = "CONFIRMEE"
	StatusShipped   Status = "EXPEDIEE"
	StatusDelivered Status = "DELIVERED"
	StatusLivree    Status = "LIVREE"
	StatusCancelled Status = "CANCELLED"
	StatusAnnulee   Status = "ANNULEE"
)

// PaymentStatus tracks the simulated payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

const (
	PaymentMethodCard           = "card"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

var (
	ErrEmptyStore       = errors.New("order must belong to a store")
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidPrice     = errors.New("item price must not be negative")
	ErrInvalidStatus    = errors.New("order status is invalid")
	ErrNotCancellable   = errors.New("order can no longer be cancelled")
	ErrOrderCancelled   = errors.New("order is cancelled")
	ErrMissingAddress   = errors.New("shipping address is required")
	ErrEmptyProductLine = errors.New("item product id is required")
)

// ShippingAddress is stored alongside the order as JSON.
type ShippingAddress struct {
	FullName   string `json:"fullName,omitempty"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// IsZero reports whether no address field was provided.
func (a ShippingAddress) IsZero() bool {
	return strings.TrimSpace(a.FullName+a.Street+a.City+a.PostalCode+a.Country+a.Phone) == ""
}

// OrderItem is a product line frozen at checkout time.
type OrderItem struct {
	ProductID string
	Name      string
	Image     string
	Quantity  int
	Price     decimal.Decimal
}

// LineTotal is price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the per-store purchase aggregate created at checkout.
type Order struct {
	ID              string
	Number          string
	UserID          string
	StoreID         string
	Status          Status
	PaymentStatus   PaymentStatus
	PaymentMethod   string
	Total           decimal.Decimal
	ShippingAddress ShippingAddress
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder builds a pending order. Card payments are simulated as immediately paid.
func NewOrder(id, number, userID, storeID, paymentMethod string, address ShippingAddress, items []OrderItem) (*Order, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, ErrEmptyStore
	}
	if address.IsZero() {
		return nil, ErrMissingAddress
	}
	o := &Order{
		ID:              id,
		Number:          number,
		UserID:          userID,
		StoreID:         storeID,
		Status:          StatusPending,
		PaymentStatus:   InitialPaymentStatus(paymentMethod),
		PaymentMethod:   strings.TrimSpace(paymentMethod),
		ShippingAddress: address,
	}
	if err := o.ReplaceItems(items); err != nil {
		return nil, err
	}
	return o, nil
}

// ReplaceItems validates the lines and recomputes the total.
func (o *Order) ReplaceItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	total := decimal.Zero
	for _, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return ErrEmptyProductLine
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if item.Price.IsNegative() {
			return ErrInvalidPrice
		}
		total = total.Add(item.LineTotal())
	}
	o.Items = append([]OrderItem{}, items...)
	o.Total = total
	return nil
}

// IsPaid reports whether the simulated payment went through.
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentPaid
}

// IsCancelled reports whether the order was cancelled under either tag.
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled || o.Status == StatusAnnulee
}

// CanCancel reports whether the order is still open for cancellation.
func (o *Order) CanCancel() bool {
	switch o.Status {
	case StatusDelivered, StatusLivree, StatusCancelled, StatusAnnulee:
		return false
	default:
		return true
	}
}

// Cancel moves the order to CANCELLED and refunds a paid order.
// It reports whether a refund happened so revenue can be reversed.
func (o *Order) Cancel(now time.Time) (refunded bool, err error) {
	if !o.CanCancel() {
		return false, ErrNotCancellable
	}
	refunded = o.IsPaid()
	o.Status = StatusCancelled
	if refunded {
		o.PaymentStatus = PaymentRefunded
	} else {
		o.PaymentStatus = PaymentCancelled
	}
	o.UpdatedAt = now
	return refunded, nil
}

// Advance applies a seller-side status change. Delivering a cash-on-delivery order marks it paid.
func (o *Order) Advance(status Status, now time.Time) error {
	status = Status(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if o.IsCancelled() {
		return ErrOrderCancelled
	}
	if status == StatusCancelled || status == StatusAnnulee {
		_, err := o.Cancel(now)
		return err
	}
	if (status == StatusDelivered || status == StatusLivree) && o.PaymentMethod == PaymentMethodCashOnDelivery && o.PaymentStatus == PaymentPending {
		o.PaymentStatus = PaymentPaid
	}
	o.Status = status
	o.UpdatedAt = now
	return nil
}

// Valid reports whether the status is a known tag.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusLivree, StatusCancelled, StatusAnnulee:
		return true
	default:
		return false
	}
}

// Valid reports whether the payment status is a known tag.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentCancelled:
		return true
	default:
		return false
	}
}

// InitialPaymentStatus is PAID for card payments and PENDING otherwise.
func InitialPaymentStatus(method string) PaymentStatus {
	if strings.TrimSpace(method) == PaymentMethodCard {
		return PaymentPaid
	}
	return PaymentPending
}

// OrderNumber formats the customer-facing order reference.
func OrderNumber(now time.Time, suffix int) string {
	return fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), suffix)
}
