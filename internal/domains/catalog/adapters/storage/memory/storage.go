package memory

import (
	"context"
	"strings"
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
)

var _ ports.ObjectStorage = (*Storage)(nil)

// Storage hands out local URLs without talking to an object store. Used when S3 is not configured.
type Storage struct {
	baseURL string
	ttl     time.Duration
}

func NewStorage(baseURL string) *Storage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}
	return &Storage{baseURL: strings.TrimRight(baseURL, "/"), ttl: 15 * time.Minute}
}

func (s *Storage) PresignUpload(_ context.Context, key, _ string) (*ports.PresignedUpload, error) {
	return &ports.PresignedUpload{
		URL:       s.PublicURL(key),
		Method:    "PUT",
		Key:       key,
		PublicURL: s.PublicURL(key),
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

func (s *Storage) PublicURL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}
