package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.sessions.Store(session.ID, session)
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	value, ok := s.sessions.Load(id)
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	session := value.(domain.Session)
	return &session, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.sessions.Delete(id)
	return nil
}

func (s *SessionStore) DeleteByUser(_ context.Context, userID string) error {
	s.sessions.Range(func(key, value any) bool {
		if value.(domain.Session).UserID == userID {
			s.sessions.Delete(key)
		}
		return true
	})
	return nil
}

// PurgeExpired drops sessions whose expiry has passed.
func (s *SessionStore) PurgeExpired(_ context.Context) (int64, error) {
	now := time.Now()
	var purged int64
	s.sessions.Range(func(key, value any) bool {
		if value.(domain.Session).Expired(now) {
			s.sessions.Delete(key)
			purged++
		}
		return true
	})
	return purged, nil
}
