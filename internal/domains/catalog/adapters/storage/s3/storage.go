// Package s3 issues presigned product image uploads against any S3-compatible store.
package s3

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
)

var _ ports.ObjectStorage = (*Storage)(nil)

// Config holds the S3 connection settings.
type Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	UsePathStyle  bool
	PublicBaseURL string
}

// Storage presigns PUT requests for product images.
type Storage struct {
	presign    *s3.PresignClient
	bucket     string
	publicBase string
	expiration time.Duration
}

// Option configures Storage.
type Option func(*Storage)

// WithPresignExpiration overrides the default 15 minute URL lifetime.
func WithPresignExpiration(d time.Duration) Option {
	return func(s *Storage) {
		if d > 0 {
			s.expiration = d
		}
	}
}

// NewStorage builds an S3 client with static credentials.
func NewStorage(ctx context.Context, cfg Config, opts ...Option) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("s3 credentials are required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		switch {
		case cfg.Endpoint != "":
			publicBase = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		default:
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
		}
	}
	s := &Storage{
		presign:    s3.NewPresignClient(client),
		bucket:     cfg.Bucket,
		publicBase: publicBase,
		expiration: 15 * time.Minute,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// PresignUpload returns a presigned PUT URL for key.
func (s *Storage) PresignUpload(ctx context.Context, key, contentType string) (*ports.PresignedUpload, error) {
	if key == "" {
		return nil, errors.New("storage key is required")
	}
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.expiration))
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	method := req.Method
	if method == "" {
		method = http.MethodPut
	}
	return &ports.PresignedUpload{
		URL:       req.URL,
		Method:    method,
		Key:       key,
		PublicURL: s.PublicURL(key),
		ExpiresAt: time.Now().Add(s.expiration),
	}, nil
}

// PublicURL is where the object is served once uploaded.
func (s *Storage) PublicURL(key string) string {
	return s.publicBase + "/" + strings.TrimLeft(key, "/")
}
