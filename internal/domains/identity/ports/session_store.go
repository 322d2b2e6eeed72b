package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
)

// ErrSessionNotFound indicates the session was revoked, purged or never issued.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts session persistence so issued tokens can be revoked.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// NoopSessionStore accepts every token; revocation is not possible with it.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(_ context.Context, _ domain.Session) error { return nil }
func (noopSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	return &domain.Session{ID: id, ExpiresAt: time.Now().Add(time.Minute)}, nil
}
func (noopSessionStore) Delete(_ context.Context, _ string) error       { return nil }
func (noopSessionStore) DeleteByUser(_ context.Context, _ string) error { return nil }
