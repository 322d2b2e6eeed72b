package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for every bounded context. The records below mirror
// the Postgres adapters; adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&storeRecord{},
		&platformStatisticRecord{},
		&categoryRecord{},
		&productRecord{},
		&idempotencyKeyRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&listeRecord{},
		&besoinRecord{},
		&associationRecord{},
		&ticketRecord{},
		&notificationRecord{},
	); err != nil {
		return err
	}
	return seedPlatformStatistic(db)
}

// platformStatisticID is the singleton row updated on every paid order.
const platformStatisticID = "global"

func seedPlatformStatistic(db *gorm.DB) error {
	return db.Where(platformStatisticRecord{ID: platformStatisticID}).
		FirstOrCreate(&platformStatisticRecord{ID: platformStatisticID, TotalRevenue: decimal.Zero, UpdatedAt: time.Now().UTC()}).Error
}

// identity

type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:uuid"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Image        string    `gorm:"column:image"`
	Role         string    `gorm:"column:role;type:varchar(16);index"`
	Provider     string    `gorm:"column:provider;type:varchar(16)"`
	StoreID      *string   `gorm:"column:store_id;type:uuid"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

type sessionRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid"`
	UserID    string    `gorm:"column:user_id;type:uuid;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// stores

type storeRecord struct {
	ID         string          `gorm:"primaryKey;column:id;type:uuid"`
	OwnerID    string          `gorm:"column:owner_id;type:uuid;uniqueIndex"`
	Name       string          `gorm:"column:name"`
	Revenue    decimal.Decimal `gorm:"column:revenue;type:numeric(12,2);not null;default:0"`
	TotalSales int64           `gorm:"column:total_sales;not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (storeRecord) TableName() string { return "stores" }

type platformStatisticRecord struct {
	ID           string          `gorm:"primaryKey;column:id"`
	TotalRevenue decimal.Decimal `gorm:"column:total_revenue;type:numeric(14,2);not null;default:0"`
	TotalOrders  int64           `gorm:"column:total_orders;not null;default:0"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (platformStatisticRecord) TableName() string { return "platform_statistics" }

// catalog

type categoryRecord struct {
	ID   string `gorm:"primaryKey;column:id;type:uuid"`
	Name string `gorm:"column:name"`
	Slug string `gorm:"column:slug;uniqueIndex"`
}

func (categoryRecord) TableName() string { return "categories" }

type productRecord struct {
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
	Attributes      map[string]string `gorm:"column:attributes;serializer:json"`
	IsActive        bool              `gorm:"column:is_active;index"`
	CreatedAt       time.Time         `gorm:"column:created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type idempotencyKeyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	ProductID   string    `gorm:"column:product_id;type:uuid"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (idempotencyKeyRecord) TableName() string { return "product_idempotency_keys" }

// orders

type orderRecord struct {
	ID              string            `gorm:"primaryKey;column:id;type:uuid"`
	Number          string            `gorm:"column:number;type:varchar(40);index"`
	UserID          *string           `gorm:"column:user_id;type:uuid;index:idx_orders_user_status"`
	StoreID         string            `gorm:"column:store_id;type:uuid;index:idx_orders_store_status"`
	Status          string            `gorm:"column:status;type:varchar(32);index:idx_orders_user_status;index:idx_orders_store_status"`
	PaymentStatus   string            `gorm:"column:payment_status;type:varchar(32)"`
	PaymentMethod   string            `gorm:"column:payment_method;type:varchar(32)"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	ShippingAddress map[string]string `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	CreatedAt       time.Time         `gorm:"column:created_at;index"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id;autoIncrement"`
	OrderID   string          `gorm:"column:order_id;type:uuid;index"`
	ProductID string          `gorm:"column:product_id;type:uuid;index"`
	Name      string          `gorm:"column:name"`
	Image     string          `gorm:"column:image"`
	Quantity  int             `gorm:"column:quantity;check:quantity > 0"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// schoollists

type listeRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:uuid"`
	Titre       string    `gorm:"column:titre;not null"`
	Description string    `gorm:"column:description"`
	Classe      string    `gorm:"column:classe"`
	Statut      string    `gorm:"column:statut;type:varchar(16);index"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (listeRecord) TableName() string { return "listes_scolaires" }

type besoinRecord struct {
	ID         string `gorm:"primaryKey;column:id;type:uuid"`
	ListeID    string `gorm:"column:liste_id;type:uuid;index"`
	Position   int    `gorm:"column:position"`
	NomProduit string `gorm:"column:nom_produit;not null"`
	Quantite   int    `gorm:"column:quantite;not null;default:1"`
	Details    string `gorm:"column:details"`
	Statut     string `gorm:"column:statut;type:varchar(16)"`
}

func (besoinRecord) TableName() string { return "besoins" }

type associationRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	BesoinID  string          `gorm:"column:besoin_id;type:uuid;uniqueIndex:idx_association_besoin_product"`
	ProductID string          `gorm:"column:product_id;type:uuid;uniqueIndex:idx_association_besoin_product"`
	StoreID   string          `gorm:"column:store_id;type:uuid;index"`
	Prix      decimal.Decimal `gorm:"column:prix;type:numeric(12,2);not null"`
	Statut    string          `gorm:"column:statut;type:varchar(16)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (associationRecord) TableName() string { return "produit_associations" }

// support

type ticketRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:uuid"`
	UserID      *string   `gorm:"column:user_id;type:uuid;index"`
	Name        string    `gorm:"column:name"`
	Email       string    `gorm:"column:email;index"`
	Subject     string    `gorm:"column:subject;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Category    string    `gorm:"column:category;type:varchar(20);default:OTHER"`
	Priority    string    `gorm:"column:priority;type:varchar(20);default:MEDIUM"`
	Status      string    `gorm:"column:status;type:varchar(20);default:OPEN;index"`
	OrderNumber string    `gorm:"column:order_number;type:varchar(40)"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (ticketRecord) TableName() string { return "support_tickets" }

// notifications

type notificationRecord struct {
	ID        string         `gorm:"primaryKey;column:id;type:uuid"`
	UserID    string         `gorm:"column:user_id;type:uuid;index:idx_notifications_user_read"`
	Title     string         `gorm:"column:title;not null"`
	Message   string         `gorm:"column:message;type:text"`
	Type      string         `gorm:"column:type;type:varchar(20)"`
	Meta      map[string]any `gorm:"column:meta;type:jsonb;serializer:json"`
	Read      bool           `gorm:"column:read;default:false;index:idx_notifications_user_read"`
	CreatedAt time.Time      `gorm:"column:created_at;index"`
}

func (notificationRecord) TableName() string { return "notifications" }
