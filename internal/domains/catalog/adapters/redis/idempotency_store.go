package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
)

const (
	defaultKeyPrefix = "catalog:idempotency:"
	defaultTTL       = 24 * time.Hour
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore shares idempotency keys across API instances through Redis.
type IdempotencyStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewIdempotencyStore wraps an existing client. Zero ttl keeps keys for 24h.
func NewIdempotencyStore(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *IdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &IdempotencyStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

type storedRecord struct {
	RequestHash string    `json:"requestHash"`
	ProductID   string    `json:"productId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Get returns the record for key, or nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read idempotency key: %w", err)
	}
	var rec storedRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode idempotency key: %w", err)
	}
	return &ports.IdempotencyRecord{Key: key, RequestHash: rec.RequestHash, ProductID: rec.ProductID, CreatedAt: rec.CreatedAt}, nil
}

// Save claims key with SETNX; a lost race resolves against the stored record.
func (s *IdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	record.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(storedRecord{RequestHash: record.RequestHash, ProductID: record.ProductID, CreatedAt: record.CreatedAt})
	if err != nil {
		return nil, err
	}
	ok, err := s.client.SetNX(ctx, s.keyPrefix+record.Key, payload, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("store idempotency key: %w", err)
	}
	if ok {
		return &record, nil
	}
	existing, err := s.Get(ctx, record.Key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("idempotency key expired during save")
	}
	if !existing.Matches(record) {
		return existing, ports.ErrIdempotencyConflict
	}
	return existing, nil
}
