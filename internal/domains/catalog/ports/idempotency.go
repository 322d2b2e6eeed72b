package ports

import (
	"context"
	"errors"
	"time"
)

var ErrIdempotencyConflict = errors.New("idempotency key reused with a different payload")

// IdempotencyRecord ties an Idempotency-Key header to the product it produced.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	ProductID   string
	CreatedAt   time.Time
}

// Matches reports whether other replays the same creation request.
func (r IdempotencyRecord) Matches(other IdempotencyRecord) bool {
	return r.RequestHash == other.RequestHash && r.ProductID == other.ProductID
}

// IdempotencyStore remembers product creation keys so client retries replay
// the first result instead of creating duplicates.
type IdempotencyStore interface {
	// Get returns nil, nil for unknown keys.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save claims the key. When the key is taken by a non-matching record the
	// stored record is returned alongside ErrIdempotencyConflict.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
