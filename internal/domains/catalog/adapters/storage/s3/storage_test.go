package s3

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorage_RequiresBucketAndCredentials(t *testing.T) {
	_, err := NewStorage(context.Background(), Config{AccessKey: "a", SecretKey: "b"})
	require.Error(t, err)
	_, err = NewStorage(context.Background(), Config{Bucket: "media"})
	require.Error(t, err)
}

func TestPresignUpload_SignsPathStyleURL(t *testing.T) {
	storage, err := NewStorage(context.Background(), Config{
		Endpoint:     "http://localhost:9000",
		Region:       "eu-west-3",
		Bucket:       "media",
		AccessKey:    "minio",
		SecretKey:    "minio-secret",
		UsePathStyle: true,
	}, WithPresignExpiration(5*time.Minute))
	require.NoError(t, err)

	upload, err := storage.PresignUpload(context.Background(), "products/s1/p1/abc-pen.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "PUT", upload.Method)
	assert.True(t, strings.HasPrefix(upload.URL, "http://localhost:9000/media/products/s1/p1/abc-pen.png?"))
	assert.Contains(t, upload.URL, "X-Amz-Signature=")
	assert.Contains(t, upload.URL, "X-Amz-Expires=300")
	assert.Equal(t, "http://localhost:9000/media/products/s1/p1/abc-pen.png", upload.PublicURL)
}
