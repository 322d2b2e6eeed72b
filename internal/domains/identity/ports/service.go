package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
)

// RegisterInput carries self-service signup data.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	StoreName string
}

// OAuthSignInInput carries the provider token plus the role requested on the signup page.
type OAuthSignInInput struct {
	Provider      string
	IDToken       string
	RequestedRole string
}

// AuthResult is returned by every successful sign-in.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
	Redirect  string
	Created   bool
}

// Service exposes identity use cases to adapters.
type Service interface {
	RegisterClient(ctx context.Context, input RegisterInput) (*AuthResult, error)
	RegisterSeller(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	SignInWithOAuth(ctx context.Context, input OAuthSignInInput) (*AuthResult, error)
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
	Logout(ctx context.Context, sessionID string) error
	FindOrCreateGuest(ctx context.Context, email, name string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}
