package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-marketplace/internal/shared/projection"
)

var (
	_ ports.Repository         = (*Repository)(nil)
	_ ports.CategoryRepository = (*Repository)(nil)
)

// Repository persists products and categories in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProductRecord maps products to the products table.
type ProductRecord struct {
	ID              string            `gorm:"primaryKey;column:id;type:uuid"`
	StoreID         string            `gorm:"column:store_id;type:uuid;index"`
	CategoryID      *string           `gorm:"column:category_id;type:uuid;index"`
	Name            string            `gorm:"column:name"`
	Barcode         string            `gorm:"column:barcode"`
	Description     string            `gorm:"column:description"`
	Price           decimal.Decimal   `gorm:"column:price;type:numeric(12,2)"`
	Discount        decimal.Decimal   `gorm:"column:discount;type:numeric(5,2);default:0"`
	IsWholesale     bool              `gorm:"column:is_wholesale"`
	WholesalePrice  decimal.Decimal   `gorm:"column:wholesale_price;type:numeric(12,2);default:0"`
	WholesaleMinQty int               `gorm:"column:wholesale_min_qty"`
	Stock           int               `gorm:"column:stock;check:stock >= 0"`
	Images          pq.StringArray    `gorm:"column:images;type:text[]"`
	Tags            pq.StringArray    `gorm:"column:tags;type:text[]"`
	Attributes      domain.Attributes `gorm:"column:attributes;serializer:json"`
	IsActive        bool              `gorm:"column:is_active;index"`
	CreatedAt       time.Time         `gorm:"column:created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
}

func (ProductRecord) TableName() string { return "products" }

// CategoryRecord maps categories to the categories table.
type CategoryRecord struct {
	ID   string `gorm:"primaryKey;column:id;type:uuid"`
	Name string `gorm:"column:name"`
	Slug string `gorm:"column:slug;uniqueIndex"`
}

func (CategoryRecord) TableName() string { return "categories" }

// Save inserts or updates a product.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("cannot save nil product")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"category_id", "name", "barcode", "description", "price", "discount",
				"is_wholesale", "wholesale_price", "wholesale_min_qty", "stock",
				"images", "tags", "attributes", "is_active", "updated_at",
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, product.ID)
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ProductRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Delete removes a product by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&ProductRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns products matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ports.ProductFilter) ([]*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&ProductRecord{})
	if filter.StoreID != "" {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(lower(name) LIKE ? OR lower(description) LIKE ?)", pattern, pattern)
	}
	var records []ProductRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Product], 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

// DecrementStock applies a conditional update so concurrent checkouts cannot oversell.
func (r *Repository) DecrementStock(ctx context.Context, id string, qty int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&ProductRecord{}).
		Where("id = ? AND stock >= ?", id, qty).
		Updates(map[string]any{"stock": gorm.Expr("stock - ?", qty), "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProductRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	return domain.ErrInsufficientStock
}

// RestoreStock adds qty units back.
func (r *Repository) RestoreStock(ctx context.Context, id string, qty int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&ProductRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"stock": gorm.Expr("stock + ?", qty), "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// SaveCategory upserts a category keyed by id.
func (r *Repository) SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := CategoryRecord{ID: category.ID, Name: category.Name, Slug: category.Slug}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoUpdates: clause.AssignmentColumns([]string{"name", "slug"})}).
		Create(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrCategoryExists
		}
		return nil, err
	}
	return &domain.Category{ID: record.ID, Name: record.Name, Slug: record.Slug}, nil
}

// GetCategory fetches a category by id.
func (r *Repository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record CategoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCategoryNotFound
		}
		return nil, err
	}
	return &domain.Category{ID: record.ID, Name: record.Name, Slug: record.Slug}, nil
}

// ListCategories returns every category ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []CategoryRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Category, 0, len(records))
	for _, rec := range records {
		list = append(list, &domain.Category{ID: rec.ID, Name: rec.Name, Slug: rec.Slug})
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(p *domain.Product) ProductRecord {
	rec := ProductRecord{
		ID:              p.ID,
		StoreID:         p.StoreID,
		Name:            p.Name,
		Barcode:         p.Barcode,
		Description:     p.Description,
		Price:           p.Price,
		Discount:        p.Discount,
		IsWholesale:     p.IsWholesale,
		WholesalePrice:  p.WholesalePrice,
		WholesaleMinQty: p.WholesaleMinQty,
		Stock:           p.Stock,
		Images:          pq.StringArray(append([]string{}, p.Images...)),
		Tags:            pq.StringArray(append([]string{}, p.Tags...)),
		Attributes:      p.Attributes,
		IsActive:        p.IsActive,
	}
	if p.CategoryID != "" {
		categoryID := p.CategoryID
		rec.CategoryID = &categoryID
	}
	return rec
}

func (r ProductRecord) toProjection() *projection.Projection[*domain.Product] {
	p := &domain.Product{
		ID:              r.ID,
		StoreID:         r.StoreID,
		Name:            r.Name,
		Barcode:         r.Barcode,
		Description:     r.Description,
		Price:           r.Price,
		Discount:        r.Discount,
		IsWholesale:     r.IsWholesale,
		WholesalePrice:  r.WholesalePrice,
		WholesaleMinQty: r.WholesaleMinQty,
		Stock:           r.Stock,
		Images:          append([]string{}, r.Images...),
		Tags:            append([]string{}, r.Tags...),
		Attributes:      r.Attributes,
		IsActive:        r.IsActive,
	}
	if r.CategoryID != nil {
		p.CategoryID = *r.CategoryID
	}
	return projection.New(p, r.CreatedAt, r.UpdatedAt)
}
