package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

// Title and type of the in-app notification sent when a customer cancels.
const (
	CancelledNotificationTitle = "Commande annulée"
	NotificationTypeOrder      = "ORDER_UPDATE"
)

// Service orchestrates checkout and order lifecycle use cases.
type Service struct {
	repo      ports.Repository
	inventory ports.Inventory
	customers ports.Customers
	ledger    ports.RevenueLedger
	notifier  ports.Notifier
	events    ports.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
	numbers   func(time.Time) string
}

// Option customises the orders service.
type Option func(*Service)

// WithCustomers enables guest checkout by email.
func WithCustomers(customers ports.Customers) Option {
	return func(s *Service) { s.customers = customers }
}

// WithRevenueLedger wires store revenue bookkeeping for paid orders.
func WithRevenueLedger(ledger ports.RevenueLedger) Option {
	return func(s *Service) { s.ledger = ledger }
}

// WithNotifier wires in-app notifications.
func WithNotifier(notifier ports.Notifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

// WithEventPublisher wires order event publishing.
func WithEventPublisher(events ports.EventPublisher) Option {
	return func(s *Service) { s.events = events }
}

// WithLogger sets the logger used for best-effort side effects.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithOrderNumbers overrides order number generation.
func WithOrderNumbers(gen func(time.Time) string) Option {
	return func(s *Service) {
		if gen != nil {
			s.numbers = gen
		}
	}
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, inventory ports.Inventory, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		inventory: inventory,
		logger:    slog.Default(),
		now:       time.Now,
		numbers: func(t time.Time) string {
			return domain.OrderNumber(t, rand.IntN(10000))
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Checkout places one order per store and publishes the resulting events.
func (s *Service) Checkout(ctx context.Context, input types.CheckoutInput) (*types.CheckoutResult, error) {
	result, err := s.PlaceOrders(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.PublishOrderEvents(ctx, result.Orders); err != nil {
		s.logger.WarnContext(ctx, "order events not published", "error", err)
	}
	return result, nil
}

type reservedLine struct {
	quote *ports.ProductQuote
	qty   int
}

// PlaceOrders validates the cart, reserves stock and persists the orders.
// Stock already reserved is restored if a later step fails.
func (s *Service) PlaceOrders(ctx context.Context, input types.CheckoutInput) (*types.CheckoutResult, error) {
	if len(input.Items) == 0 || input.ShippingAddress.IsZero() || input.Total == nil || input.Total.IsZero() {
		return nil, mapError(ErrIncompleteOrder)
	}
	lines := input.MergedLines()

	quoted := make([]reservedLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == "" {
			return nil, mapError(domain.ErrEmptyProductLine)
		}
		quote, err := s.inventory.Quote(ctx, line.ProductID, line.Quantity)
		if err != nil {
			if errors.Is(err, ports.ErrProductNotFound) {
				return nil, productNotFound(line.ProductID)
			}
			return nil, err
		}
		quoted = append(quoted, reservedLine{quote: quote, qty: line.Quantity})
	}

	if existing, err := s.placedOrders(ctx, input.PlacementID, quoted); err != nil || existing != nil {
		return existing, err
	}
	for _, line := range quoted {
		if line.quote.Stock < line.qty {
			return nil, &InsufficientStockError{
				ProductID:   line.quote.ProductID,
				ProductName: line.quote.Name,
				Available:   line.quote.Stock,
				Requested:   line.qty,
			}
		}
	}

	userID, err := s.resolveCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var storeOrder []string
	itemsByStore := map[string][]domain.OrderItem{}
	for _, line := range quoted {
		storeID := line.quote.StoreID
		if _, seen := itemsByStore[storeID]; !seen {
			storeOrder = append(storeOrder, storeID)
		}
		itemsByStore[storeID] = append(itemsByStore[storeID], domain.OrderItem{
			ProductID: line.quote.ProductID,
			Name:      line.quote.Name,
			Image:     line.quote.Image,
			Quantity:  line.qty,
			Price:     line.quote.UnitPrice,
		})
	}
	orders := make([]*domain.Order, 0, len(storeOrder))
	for _, storeID := range storeOrder {
		order, err := domain.NewOrder(orderID(input.PlacementID, storeID), s.numbers(now), userID, storeID, input.PaymentMethod, input.ShippingAddress, itemsByStore[storeID])
		if err != nil {
			return nil, mapError(err)
		}
		order.CreatedAt = now
		order.UpdatedAt = now
		orders = append(orders, order)
	}

	reserved, err := s.reserve(ctx, quoted)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveAll(ctx, orders); err != nil {
		s.release(ctx, reserved)
		return nil, err
	}

	for _, order := range orders {
		if !order.IsPaid() || s.ledger == nil {
			continue
		}
		if err := s.ledger.RecordSale(ctx, order.StoreID, order.Total); err != nil {
			s.logger.WarnContext(ctx, "store revenue not recorded", "orderId", order.ID, "storeId", order.StoreID, "error", err)
		}
	}
	return &types.CheckoutResult{Orders: orders}, nil
}

// placedOrders returns the orders a previous attempt with the same placement
// id stored. SaveAll is atomic, so finding the first order means all exist.
func (s *Service) placedOrders(ctx context.Context, placementID string, lines []reservedLine) (*types.CheckoutResult, error) {
	if strings.TrimSpace(placementID) == "" || len(lines) == 0 {
		return nil, nil
	}
	var stores []string
	seen := map[string]bool{}
	for _, line := range lines {
		if !seen[line.quote.StoreID] {
			seen[line.quote.StoreID] = true
			stores = append(stores, line.quote.StoreID)
		}
	}
	orders := make([]*domain.Order, 0, len(stores))
	for _, storeID := range stores {
		order, err := s.repo.GetByID(ctx, orderID(placementID, storeID))
		if errors.Is(err, ports.ErrNotFound) {
			if len(orders) == 0 {
				return nil, nil
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	s.logger.InfoContext(ctx, "checkout already placed, replaying stored orders", "placementId", placementID, "orders", len(orders))
	return &types.CheckoutResult{Orders: orders}, nil
}

// orderID is random unless a placement id pins it to placement and store.
func orderID(placementID, storeID string) string {
	if placementID = strings.TrimSpace(placementID); placementID == "" {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(placementID+"/"+storeID)).String()
}

func (s *Service) resolveCustomer(ctx context.Context, input types.CheckoutInput) (string, error) {
	if id := strings.TrimSpace(input.CustomerID); id != "" {
		return id, nil
	}
	if input.CustomerInfo == nil || strings.TrimSpace(input.CustomerInfo.Email) == "" || s.customers == nil {
		return "", nil
	}
	id, err := s.customers.FindOrCreateGuest(ctx, input.CustomerInfo.Email, input.CustomerInfo.Name)
	if err != nil {
		s.logger.WarnContext(ctx, "guest customer not resolved, placing anonymous order", "error", err)
		return "", nil
	}
	return id, nil
}

func (s *Service) reserve(ctx context.Context, lines []reservedLine) ([]reservedLine, error) {
	reserved := make([]reservedLine, 0, len(lines))
	for _, line := range lines {
		if err := s.inventory.Decrement(ctx, line.quote.ProductID, line.qty); err != nil {
			s.release(ctx, reserved)
			if errors.Is(err, ports.ErrInsufficientStock) {
				return nil, s.stockError(ctx, line)
			}
			if errors.Is(err, ports.ErrProductNotFound) {
				return nil, productNotFound(line.quote.ProductID)
			}
			return nil, err
		}
		reserved = append(reserved, line)
	}
	return reserved, nil
}

func (s *Service) stockError(ctx context.Context, line reservedLine) error {
	available := line.quote.Stock
	if fresh, err := s.inventory.Quote(ctx, line.quote.ProductID, line.qty); err == nil {
		available = fresh.Stock
	}
	return &InsufficientStockError{
		ProductID:   line.quote.ProductID,
		ProductName: line.quote.Name,
		Available:   available,
		Requested:   line.qty,
	}
}

func (s *Service) release(ctx context.Context, lines []reservedLine) {
	for _, line := range lines {
		if err := s.inventory.Restore(ctx, line.quote.ProductID, line.qty); err != nil {
			s.logger.ErrorContext(ctx, "stock not restored", "productId", line.quote.ProductID, "quantity", line.qty, "error", err)
		}
	}
}

// PublishOrderEvents emits one OrderPlaced event per order.
func (s *Service) PublishOrderEvents(ctx context.Context, orders []*domain.Order) error {
	if s.events == nil || len(orders) == 0 {
		return nil
	}
	events := make([]domain.Event, 0, len(orders))
	for _, order := range orders {
		events = append(events, domain.PlacedEvent(order))
	}
	return s.events.Publish(ctx, events...)
}

// ListCustomerOrders returns the caller's orders, newest first.
func (s *Service) ListCustomerOrders(ctx context.Context, userID string, status domain.Status) ([]*domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAuthenticationRequired
	}
	status, err := normalizeFilter(status)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCustomer(ctx, userID, status)
}

// GetOrder returns an order owned by the caller.
func (s *Service) GetOrder(ctx context.Context, userID, id string) (*domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAuthenticationRequired
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ports.ErrNotFound
	}
	return order, nil
}

// ListStoreOrders is the seller view of orders placed with a store.
func (s *Service) ListStoreOrders(ctx context.Context, storeID string, status domain.Status) ([]*domain.Order, error) {
	status, err := normalizeFilter(status)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStore(ctx, storeID, status)
}

// UpdateStatus advances an order on behalf of the store that received it.
func (s *Service) UpdateStatus(ctx context.Context, storeID, orderID string, status domain.Status) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.StoreID != storeID {
		return nil, ports.ErrNotFound
	}
	from := order.Status
	wasPaid := order.IsPaid()
	if err := order.Advance(status, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	if s.ledger != nil {
		switch {
		case !wasPaid && saved.IsPaid():
			if err := s.ledger.RecordSale(ctx, saved.StoreID, saved.Total); err != nil {
				s.logger.WarnContext(ctx, "store revenue not recorded", "orderId", saved.ID, "error", err)
			}
		case wasPaid && saved.PaymentStatus == domain.PaymentRefunded:
			if err := s.ledger.ReverseSale(ctx, saved.StoreID, saved.Total); err != nil {
				s.logger.WarnContext(ctx, "store revenue not reversed", "orderId", saved.ID, "error", err)
			}
		}
	}
	s.publish(ctx, domain.OrderStatusChanged{
		BaseEvent:  domain.BaseEvent{Timestamp: saved.UpdatedAt},
		OrderID:    saved.ID,
		StoreID:    saved.StoreID,
		FromStatus: from,
		ToStatus:   saved.Status,
	})
	return saved, nil
}

// CancelOrder cancels a customer's open order, refunding it when it was paid.
func (s *Service) CancelOrder(ctx context.Context, userID, orderID string) (*types.CancelResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAuthenticationRequired
	}
	if strings.TrimSpace(orderID) == "" {
		return nil, mapError(ErrOrderIDRequired)
	}
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	refunded, err := order.Cancel(s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	if refunded && s.ledger != nil {
		if err := s.ledger.ReverseSale(ctx, saved.StoreID, saved.Total); err != nil {
			s.logger.WarnContext(ctx, "store revenue not reversed", "orderId", saved.ID, "storeId", saved.StoreID, "error", err)
		}
	}
	if s.notifier != nil {
		err := s.notifier.Notify(ctx, ports.Notification{
			UserID:  userID,
			Title:   CancelledNotificationTitle,
			Message: fmt.Sprintf("Order %s has been cancelled.", saved.Number),
			Type:    NotificationTypeOrder,
			Meta:    map[string]any{"orderId": saved.ID, "status": string(saved.Status)},
		})
		if err != nil {
			s.logger.WarnContext(ctx, "cancellation notification not created", "orderId", saved.ID, "error", err)
		}
	}
	s.publish(ctx, domain.OrderCancelled{
		BaseEvent:     domain.BaseEvent{Timestamp: saved.UpdatedAt},
		OrderID:       saved.ID,
		Number:        saved.Number,
		StoreID:       saved.StoreID,
		UserID:        saved.UserID,
		Refunded:      refunded,
		Total:         saved.Total,
		PaymentStatus: saved.PaymentStatus,
	})
	return &types.CancelResult{Order: saved, Refunded: refunded}, nil
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "order event not published", "event", event.EventName(), "orderId", event.AggregateID(), "error", err)
	}
}

func normalizeFilter(status domain.Status) (domain.Status, error) {
	status = domain.Status(strings.ToUpper(strings.TrimSpace(string(status))))
	if status == "" {
		return "", nil
	}
	if !status.Valid() {
		return "", mapError(domain.ErrInvalidStatus)
	}
	return status, nil
}

var _ ports.Service = (*Service)(nil)
