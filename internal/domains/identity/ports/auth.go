package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
)

var (
	// ErrInvalidToken covers malformed, expired or wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnsupportedProvider is returned for OAuth providers without a verifier.
	ErrUnsupportedProvider = errors.New("unsupported oauth provider")
	// ErrOAuthVerification wraps failures to validate a provider token.
	ErrOAuthVerification = errors.New("oauth token verification failed")
)

// TokenClaims is the identity payload carried by an access token.
type TokenClaims struct {
	SessionID string
	UserID    string
	Email     string
	Name      string
	Role      domain.Role
	StoreID   string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
	Parse(token string) (*TokenClaims, error)
}

// PasswordHasher hashes and compares credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// OAuthProfile is the verified identity returned by an OAuth provider.
type OAuthProfile struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// OAuthVerifier validates a provider-issued ID token.
type OAuthVerifier interface {
	Verify(ctx context.Context, idToken string) (*OAuthProfile, error)
}

// StoreProvisioner creates the store owned by a new seller.
type StoreProvisioner interface {
	ProvisionStore(ctx context.Context, ownerID, name string) (string, error)
}
