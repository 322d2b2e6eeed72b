package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps product creation keys in product_idempotency_keys.
type IdempotencyStore struct {
	db *gorm.DB
}

func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

type IdempotencyKeyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	ProductID   string    `gorm:"column:product_id;type:uuid"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (IdempotencyKeyRecord) TableName() string { return "product_idempotency_keys" }

func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if s == nil || s.db == nil {
		return nil, errStoreNotConfigured
	}
	var rows []IdempotencyKeyRecord
	if err := s.db.WithContext(ctx).Where("key = ?", key).Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load idempotency key: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	out := rows[0].port()
	return &out, nil
}

// Save inserts with ON CONFLICT DO NOTHING; zero affected rows means another
// request owns the key and its record decides between replay and conflict.
func (s *IdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if s == nil || s.db == nil {
		return nil, errStoreNotConfigured
	}
	row := IdempotencyKeyRecord{
		Key:         record.Key,
		RequestHash: record.RequestHash,
		ProductID:   record.ProductID,
		CreatedAt:   time.Now().UTC(),
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("store idempotency key: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		out := row.port()
		return &out, nil
	}

	stored, err := s.Get(ctx, record.Key)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errors.New("idempotency key vanished after conflicting insert")
	}
	if !stored.Matches(record) {
		return stored, ports.ErrIdempotencyConflict
	}
	return stored, nil
}

var errStoreNotConfigured = errors.New("postgres idempotency store not configured")

func (r IdempotencyKeyRecord) port() ports.IdempotencyRecord {
	return ports.IdempotencyRecord{
		Key:         r.Key,
		RequestHash: r.RequestHash,
		ProductID:   r.ProductID,
		CreatedAt:   r.CreatedAt,
	}
}
