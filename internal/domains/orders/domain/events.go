package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is the base interface for order domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() string
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderPlaced is raised once per store order created at checkout.
type OrderPlaced struct {
	BaseEvent
	OrderID       string          `json:"orderId"`
	Number        string          `json:"number"`
	StoreID       string          `json:"storeId"`
	UserID        string          `json:"userId,omitempty"`
	Total         decimal.Decimal `json:"total"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	ItemCount     int             `json:"itemCount"`
}

func (e OrderPlaced) EventName() string   { return "orders.order.placed" }
func (e OrderPlaced) AggregateID() string { return e.OrderID }

// OrderCancelled is raised when a customer cancels an order.
type OrderCancelled struct {
	BaseEvent
	OrderID       string          `json:"orderId"`
	Number        string          `json:"number"`
	StoreID       string          `json:"storeId"`
	UserID        string          `json:"userId,omitempty"`
	Refunded      bool            `json:"refunded"`
	Total         decimal.Decimal `json:"total"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
}

func (e OrderCancelled) EventName() string   { return "orders.order.cancelled" }
func (e OrderCancelled) AggregateID() string { return e.OrderID }

// OrderStatusChanged is raised on seller-side progression.
type OrderStatusChanged struct {
	BaseEvent
	OrderID    string `json:"orderId"`
	StoreID    string `json:"storeId"`
	FromStatus Status `json:"fromStatus"`
	ToStatus   Status `json:"toStatus"`
}

func (e OrderStatusChanged) EventName() string   { return "orders.order.status_changed" }
func (e OrderStatusChanged) AggregateID() string { return e.OrderID }

// PlacedEvent builds the event for a freshly created order.
func PlacedEvent(o *Order) OrderPlaced {
	return OrderPlaced{
		BaseEvent:     BaseEvent{Timestamp: o.CreatedAt},
		OrderID:       o.ID,
		Number:        o.Number,
		StoreID:       o.StoreID,
		UserID:        o.UserID,
		Total:         o.Total,
		PaymentStatus: o.PaymentStatus,
		ItemCount:     len(o.Items),
	}
}
