package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/cart/ports"
)

const (
	defaultKeyPrefix = "cart:"
	defaultTTL       = 30 * 24 * time.Hour
)

var _ ports.CartStore = (*Store)(nil)

// Store persists carts as JSON documents under cart:<owner>. Every save
// refreshes the expiry.
type Store struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewStore wraps an existing client. Zero ttl keeps carts for 30 days.
func NewStore(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *Store {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *Store) Load(ctx context.Context, ownerID string) (*domain.Cart, error) {
	raw, err := s.client.Get(ctx, s.key(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart: %w", err)
	}
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	cart.OwnerID = ownerID
	if cart.Items == nil {
		cart.Items = []domain.Item{}
	}
	return &cart, nil
}

func (s *Store) Save(ctx context.Context, cart *domain.Cart) error {
	if cart == nil {
		return errors.New("cannot save nil cart")
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(cart.OwnerID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store cart: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, ownerID string) error {
	if err := s.client.Del(ctx, s.key(ownerID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func (s *Store) key(ownerID string) string {
	return s.keyPrefix + ownerID
}
