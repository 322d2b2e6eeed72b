package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps product creation keys in process memory.
type IdempotencyStore struct {
	mu    sync.Mutex
	byKey map[string]ports.IdempotencyRecord
	clock func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{byKey: make(map[string]ports.IdempotencyRecord), clock: time.Now}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	rec, found := s.byKey[key]
	s.mu.Unlock()
	if !found {
		return nil, nil
	}
	return &rec, nil
}

// Save claims record.Key. A key already claimed by a different request or
// product yields ErrIdempotencyConflict with the stored record.
func (s *IdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, found := s.byKey[record.Key]
	if !found {
		record.CreatedAt = s.clock().UTC()
		s.byKey[record.Key] = record
		return &record, nil
	}
	if !stored.Matches(record) {
		return &stored, ports.ErrIdempotencyConflict
	}
	return &stored, nil
}
