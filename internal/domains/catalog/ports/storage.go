package ports

import (
	"context"
	"time"
)

// PresignedUpload is a time-limited URL the browser PUTs the image to.
type PresignedUpload struct {
	URL       string
	Method    string
	Key       string
	PublicURL string
	ExpiresAt time.Time
}

// ObjectStorage issues upload URLs for product media.
type ObjectStorage interface {
	PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error)
	PublicURL(key string) string
}
