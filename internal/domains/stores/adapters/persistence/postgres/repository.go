package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/stores/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists stores and platform statistics in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// StoreRecord maps stores to the stores table.
type StoreRecord struct {
	ID         string          `gorm:"primaryKey;column:id;type:uuid"`
	OwnerID    string          `gorm:"column:owner_id;type:uuid;uniqueIndex"`
	Name       string          `gorm:"column:name"`
	Revenue    decimal.Decimal `gorm:"column:revenue;type:numeric(12,2);not null;default:0"`
	TotalSales int64           `gorm:"column:total_sales;not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (StoreRecord) TableName() string { return "stores" }

// PlatformStatisticRecord is the singleton aggregate row.
type PlatformStatisticRecord struct {
	ID           string          `gorm:"primaryKey;column:id"`
	TotalRevenue decimal.Decimal `gorm:"column:total_revenue;type:numeric(14,2);not null;default:0"`
	TotalOrders  int64           `gorm:"column:total_orders;not null;default:0"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (PlatformStatisticRecord) TableName() string { return "platform_statistics" }

const upsertStatisticSQL = `INSERT INTO platform_statistics (id, total_revenue, total_orders, updated_at)
VALUES (?, ?, 1, ?)
ON CONFLICT (id) DO UPDATE SET
  total_revenue = platform_statistics.total_revenue + EXCLUDED.total_revenue,
  total_orders = platform_statistics.total_orders + 1,
  updated_at = EXCLUDED.updated_at`

// Create inserts a new store.
func (r *Repository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	record := toRecord(store)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a store by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	return r.first(ctx, "id = ?", strings.TrimSpace(id))
}

// GetByOwner fetches the store owned by a seller.
func (r *Repository) GetByOwner(ctx context.Context, ownerID string) (*domain.Store, error) {
	return r.first(ctx, "owner_id = ?", strings.TrimSpace(ownerID))
}

// RecordSale increments store and platform counters in one transaction.
func (r *Repository) RecordSale(ctx context.Context, storeID string, amount decimal.Decimal) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&StoreRecord{}).Where("id = ?", storeID).Updates(map[string]any{
			"revenue":     gorm.Expr("revenue + ?", amount),
			"total_sales": gorm.Expr("total_sales + 1"),
			"updated_at":  now,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return tx.Exec(upsertStatisticSQL, domain.GlobalStatisticID, amount, now).Error
	})
}

// ReverseSale decrements store and platform counters, clamping at zero in SQL.
func (r *Repository) ReverseSale(ctx context.Context, storeID string, amount decimal.Decimal) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&StoreRecord{}).Where("id = ?", storeID).Updates(map[string]any{
			"revenue":     gorm.Expr("GREATEST(revenue - ?, 0)", amount),
			"total_sales": gorm.Expr("GREATEST(total_sales - 1, 0)"),
			"updated_at":  now,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return tx.Model(&PlatformStatisticRecord{}).Where("id = ?", domain.GlobalStatisticID).Updates(map[string]any{
			"total_revenue": gorm.Expr("GREATEST(total_revenue - ?, 0)", amount),
			"total_orders":  gorm.Expr("GREATEST(total_orders - 1, 0)"),
			"updated_at":    now,
		}).Error
	})
}

// Statistics returns the platform aggregate, zeroed when no sale was recorded yet.
func (r *Repository) Statistics(ctx context.Context) (*domain.PlatformStatistic, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record PlatformStatisticRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", domain.GlobalStatisticID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewPlatformStatistic(), nil
		}
		return nil, err
	}
	return &domain.PlatformStatistic{
		ID:           record.ID,
		TotalRevenue: record.TotalRevenue,
		TotalOrders:  record.TotalOrders,
		UpdatedAt:    record.UpdatedAt,
	}, nil
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record StoreRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres store repository not configured")
	}
	return nil
}

func toRecord(store *domain.Store) StoreRecord {
	return StoreRecord{
		ID:         store.ID,
		OwnerID:    store.OwnerID,
		Name:       store.Name,
		Revenue:    store.Revenue,
		TotalSales: store.TotalSales,
	}
}

func (r StoreRecord) toDomain() *domain.Store {
	return &domain.Store{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		Name:       r.Name,
		Revenue:    r.Revenue,
		TotalSales: r.TotalSales,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
