package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/storage/s3"
	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/adapters/email"
)

const defaultJWTSecret = "dev-only-marketplace-secret"

// Config carries environment-driven settings for the API, worker and purger processes.
type Config struct {
	Port        string
	Environment string

	PostgresDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers     []string
	KafkaOrdersTopic string

	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool

	JWTSecret                  string
	JWTIssuer                  string
	SessionTTL                 time.Duration
	SessionPurgeIntervalMinute int

	GoogleClientID     string
	GoogleTokenInfoURL string

	S3    s3.Config
	Email email.Config

	CORSAllowedOrigins []string
}

// Production reports whether the process runs with production semantics.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

// S3Enabled reports whether product image uploads go to an S3 bucket.
func (c Config) S3Enabled() bool {
	return c.S3.Bucket != ""
}

// LoadConfig reads an optional .env file and the environment, applies defaults, and validates.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_ORDERS_TOPIC", "marketplace.orders")
	v.SetDefault("TEMPORAL_ADDRESS", client.DefaultHostPort)
	v.SetDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	v.SetDefault("JWT_ISSUER", "go-gin-marketplace")
	v.SetDefault("SESSION_TTL_HOURS", 720)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EMAIL_FROM", "no-reply@marketplace.local")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	cfg := Config{
		Port:               strings.TrimSpace(v.GetString("PORT")),
		Environment:        strings.TrimSpace(v.GetString("ENVIRONMENT")),
		PostgresDSN:        strings.TrimSpace(v.GetString("POSTGRES_DSN")),
		RedisAddr:          strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaOrdersTopic:   strings.TrimSpace(v.GetString("KAFKA_ORDERS_TOPIC")),
		TemporalAddress:    strings.TrimSpace(v.GetString("TEMPORAL_ADDRESS")),
		TemporalNamespace:  strings.TrimSpace(v.GetString("TEMPORAL_NAMESPACE")),
		TemporalDisabled:   isTruthy(v.GetString("TEMPORAL_DISABLED")),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          strings.TrimSpace(v.GetString("JWT_ISSUER")),
		SessionTTL:         time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		GoogleClientID:     strings.TrimSpace(v.GetString("GOOGLE_CLIENT_ID")),
		GoogleTokenInfoURL: strings.TrimSpace(v.GetString("GOOGLE_TOKENINFO_URL")),
		S3: s3.Config{
			Endpoint:      strings.TrimSpace(v.GetString("S3_ENDPOINT")),
			Region:        strings.TrimSpace(v.GetString("S3_REGION")),
			Bucket:        strings.TrimSpace(v.GetString("S3_BUCKET")),
			AccessKey:     v.GetString("S3_ACCESS_KEY"),
			SecretKey:     v.GetString("S3_SECRET_KEY"),
			UsePathStyle:  isTruthy(v.GetString("S3_USE_PATH_STYLE")),
			PublicBaseURL: strings.TrimSpace(v.GetString("S3_PUBLIC_BASE_URL")),
		},
		Email: email.Config{
			Environment: strings.TrimSpace(v.GetString("ENVIRONMENT")),
			SendReal:    isTruthy(v.GetString("SEND_REAL_EMAILS")),
			Host:        strings.TrimSpace(v.GetString("SMTP_HOST")),
			Port:        v.GetInt("SMTP_PORT"),
			Username:    v.GetString("SMTP_USER"),
			Password:    v.GetString("SMTP_PASSWORD"),
			From:        strings.TrimSpace(v.GetString("EMAIL_FROM")),
		},
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if raw := strings.TrimSpace(v.GetString("SESSION_PURGE_INTERVAL_MINUTES")); raw != "" {
		minutes := v.GetInt("SESSION_PURGE_INTERVAL_MINUTES")
		if minutes <= 0 {
			return Config{}, fmt.Errorf("SESSION_PURGE_INTERVAL_MINUTES must be a positive integer")
		}
		cfg.SessionPurgeIntervalMinute = minutes
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL_HOURS must be a positive integer")
	}
	if c.RedisDB < 0 {
		return errors.New("REDIS_DB must not be negative")
	}
	if c.JWTSecret == "" {
		if c.Production() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.JWTSecret = defaultJWTSecret
	}
	if c.Production() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in production")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
