package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// OrderRecord maps the order aggregate to the orders table.
type OrderRecord struct {
	ID              string                 `gorm:"primaryKey;column:id;type:uuid"`
	Number          string                 `gorm:"column:number;type:varchar(40);index"`
	UserID          *string                `gorm:"column:user_id;type:uuid;index:idx_orders_user_status"`
	StoreID         string                 `gorm:"column:store_id;type:uuid;index:idx_orders_store_status"`
	Status          string                 `gorm:"column:status;type:varchar(32);index:idx_orders_user_status;index:idx_orders_store_status"`
	PaymentStatus   string                 `gorm:"column:payment_status;type:varchar(32)"`
	PaymentMethod   string                 `gorm:"column:payment_method;type:varchar(32)"`
	Total           decimal.Decimal        `gorm:"column:total;type:numeric(12,2);not null"`
	ShippingAddress domain.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	Items           []OrderItemRecord      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time              `gorm:"column:created_at;index"`
	UpdatedAt       time.Time              `gorm:"column:updated_at"`
}

func (OrderRecord) TableName() string { return "orders" }

// OrderItemRecord is one purchased line.
type OrderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id;autoIncrement"`
	OrderID   string          `gorm:"column:order_id;type:uuid;index"`
	ProductID string          `gorm:"column:product_id;type:uuid;index"`
	Name      string          `gorm:"column:name"`
	Image     string          `gorm:"column:image"`
	Quantity  int             `gorm:"column:quantity;check:quantity > 0"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (OrderItemRecord) TableName() string { return "order_items" }

// SaveAll inserts the orders of a checkout and their items in one transaction.
func (r *Repository) SaveAll(ctx context.Context, orders []*domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}
	records := make([]OrderRecord, 0, len(orders))
	var items []OrderItemRecord
	for _, order := range orders {
		if order == nil {
			return errors.New("order is nil")
		}
		record := toRecord(order)
		items = append(items, record.Items...)
		record.Items = nil
		records = append(records, record)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&records).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
}

// Save updates the mutable status fields of an existing order.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	updatedAt := order.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	result := r.db.WithContext(ctx).Model(&OrderRecord{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":         string(order.Status),
			"payment_status": string(order.PaymentStatus),
			"updated_at":     updatedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, order.ID)
}

// GetByID fetches an order with its items.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record OrderRecord
	if err := r.withItems(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByCustomer returns a customer's orders newest first.
func (r *Repository) ListByCustomer(ctx context.Context, userID string, status domain.Status) ([]*domain.Order, error) {
	return r.list(ctx, "user_id = ?", userID, status)
}

// ListByStore returns the orders received by a store newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID string, status domain.Status) ([]*domain.Order, error) {
	return r.list(ctx, "store_id = ?", storeID, status)
}

func (r *Repository) list(ctx context.Context, where string, arg string, status domain.Status) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.withItems(ctx).Where(where, arg)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	var records []OrderRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) OrderRecord {
	rec := OrderRecord{
		ID:              order.ID,
		Number:          order.Number,
		StoreID:         order.StoreID,
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		PaymentMethod:   order.PaymentMethod,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	if order.UserID != "" {
		userID := order.UserID
		rec.UserID = &userID
	}
	for _, item := range order.Items {
		rec.Items = append(rec.Items, OrderItemRecord{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return rec
}

func (r OrderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:              r.ID,
		Number:          r.Number,
		StoreID:         r.StoreID,
		Status:          domain.Status(r.Status),
		PaymentStatus:   domain.PaymentStatus(r.PaymentStatus),
		PaymentMethod:   r.PaymentMethod,
		Total:           r.Total,
		ShippingAddress: r.ShippingAddress,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.UserID != nil {
		order.UserID = *r.UserID
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return order
}
