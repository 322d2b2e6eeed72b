package mapper

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	ordertypes "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
)

// ShippingAddress is shared by requests and responses.
type ShippingAddress struct {
	FullName   string `json:"fullName,omitempty"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// CheckoutItem is a requested line. Any client-sent price is ignored. Cart
// payloads carry the product under id instead of productId.
type CheckoutItem struct {
	ProductID string  `json:"productId"`
	ID        string  `json:"id,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
}

// CustomerInfo identifies a guest buyer.
type CustomerInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CheckoutRequest is the POST /api/orders payload.
type CheckoutRequest struct {
	Items           []CheckoutItem   `json:"items"`
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
	Total           *float64         `json:"total"`
	PaymentMethod   string           `json:"paymentMethod" binding:"omitempty,payment_method"`
	CustomerInfo    *CustomerInfo    `json:"customerInfo,omitempty"`
}

// ToCheckoutInput converts the payload for the application layer.
func (r CheckoutRequest) ToCheckoutInput(customerID, idempotencyKey string) ordertypes.CheckoutInput {
	input := ordertypes.CheckoutInput{
		CustomerID:     customerID,
		PaymentMethod:  r.PaymentMethod,
		IdempotencyKey: idempotencyKey,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, ordertypes.CheckoutLine{ProductID: item.productID(), Quantity: item.Quantity})
	}
	if r.ShippingAddress != nil {
		input.ShippingAddress = domain.ShippingAddress(*r.ShippingAddress)
	}
	if r.Total != nil {
		total := decimal.NewFromFloat(*r.Total)
		input.Total = &total
	}
	if r.CustomerInfo != nil {
		input.CustomerInfo = &ordertypes.CustomerInfo{Name: r.CustomerInfo.Name, Email: r.CustomerInfo.Email}
	}
	return input
}

func (i CheckoutItem) productID() string {
	if id := strings.TrimSpace(i.ProductID); id != "" {
		return id
	}
	return strings.TrimSpace(i.ID)
}

// CancelRequest is the PATCH /api/orders payload.
type CancelRequest struct {
	OrderID string `json:"orderId"`
}

// StatusRequest is the seller PATCH payload.
type StatusRequest struct {
	Status string `json:"status" binding:"required,order_status"`
}

// OrderItem is the HTTP representation of an order line.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is the HTTP representation of an order.
type Order struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	UserID          string          `json:"userId,omitempty"`
	StoreID         string          `json:"storeId"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	Total           float64         `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

// CheckoutResponse is returned with 201 after a successful checkout.
type CheckoutResponse struct {
	Success  bool                  `json:"success"`
	Message  string                `json:"message"`
	Orders   []Order               `json:"orders"`
	OrderIDs []ordertypes.OrderRef `json:"orderIds"`
}

// CancelResponse is returned after a customer cancellation.
type CancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

// FromDomainOrder converts an aggregate into its HTTP shape.
func FromDomainOrder(o *domain.Order) Order {
	if o == nil {
		return Order{}
	}
	out := Order{
		ID:              o.ID,
		Number:          o.Number,
		UserID:          o.UserID,
		StoreID:         o.StoreID,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		PaymentMethod:   o.PaymentMethod,
		Total:           o.Total.InexactFloat64(),
		ShippingAddress: ShippingAddress(o.ShippingAddress),
		Items:           make([]OrderItem, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price.InexactFloat64(),
			Subtotal:  item.LineTotal().InexactFloat64(),
		})
	}
	if !o.CreatedAt.IsZero() {
		created := o.CreatedAt
		out.CreatedAt = &created
	}
	if !o.UpdatedAt.IsZero() {
		updated := o.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}

// FromDomainOrders converts a list of aggregates.
func FromDomainOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}
