package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
)

// DefaultSessionTTL matches the storefront's 30 day session lifetime.
const DefaultSessionTTL = 30 * 24 * time.Hour

// Service exposes identity bounded context use cases.
type Service struct {
	repo       ports.Repository
	sessions   ports.SessionStore
	tokens     ports.TokenIssuer
	hasher     ports.PasswordHasher
	stores     ports.StoreProvisioner
	verifiers  map[string]ports.OAuthVerifier
	sessionTTL time.Duration
	now        func() time.Time
}

// Option customises the identity service.
type Option func(*Service)

// WithStoreProvisioner wires store creation for new sellers.
func WithStoreProvisioner(stores ports.StoreProvisioner) Option {
	return func(s *Service) { s.stores = stores }
}

// WithOAuthVerifier registers a verifier for the named provider (e.g. "google").
func WithOAuthVerifier(provider string, verifier ports.OAuthVerifier) Option {
	return func(s *Service) {
		if verifier != nil {
			s.verifiers[strings.ToLower(provider)] = verifier
		}
	}
}

// WithSessionTTL overrides the session lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithClock overrides the time source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenIssuer, hasher ports.PasswordHasher, opts ...Option) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	s := &Service{
		repo:       repo,
		sessions:   sessions,
		tokens:     tokens,
		hasher:     hasher,
		verifiers:  map[string]ports.OAuthVerifier{},
		sessionTTL: DefaultSessionTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// RegisterClient creates a customer account and signs it in.
func (s *Service) RegisterClient(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	user, err := s.register(ctx, input, domain.RoleCustomer)
	if err != nil {
		return nil, mapError(err)
	}
	result, err := s.startSession(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	result.Created = true
	return result, nil
}

// RegisterSeller creates a seller account together with its store.
func (s *Service) RegisterSeller(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	user, err := s.register(ctx, input, domain.RoleSeller)
	if err != nil {
		return nil, mapError(err)
	}
	if user, err = s.provisionStore(ctx, user, input.StoreName); err != nil {
		return nil, mapError(err)
	}
	result, err := s.startSession(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	result.Created = true
	return result, nil
}

func (s *Service) register(ctx context.Context, input ports.RegisterInput, role domain.Role) (*domain.User, error) {
	user, err := domain.NewUser(uuid.NewString(), input.Name, input.Email, role, domain.ProviderCredentials)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return nil, ports.ErrEmailTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	return s.repo.Save(ctx, user)
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, mapError(ErrMissingCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrInvalidCredentials)
		}
		return nil, err
	}
	if !user.HasPassword() || !s.hasher.Compare(user.PasswordHash, password) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	result, err := s.startSession(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// SignInWithOAuth verifies a provider token and finds or creates the matching account.
func (s *Service) SignInWithOAuth(ctx context.Context, input ports.OAuthSignInInput) (*ports.AuthResult, error) {
	provider := strings.ToLower(strings.TrimSpace(input.Provider))
	verifier, ok := s.verifiers[provider]
	if !ok {
		return nil, ports.ErrUnsupportedProvider
	}
	profile, err := verifier.Verify(ctx, input.IDToken)
	if err != nil {
		if errors.Is(err, ports.ErrOAuthVerification) {
			return nil, mapError(err)
		}
		return nil, mapError(fmt.Errorf("%w: %w", ports.ErrOAuthVerification, err))
	}
	user, err := s.repo.GetByEmail(ctx, profile.Email)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrNotFound):
		name := profile.Name
		if strings.TrimSpace(name) == "" {
			name = strings.Split(profile.Email, "@")[0]
		}
		role := domain.SignupRole(input.RequestedRole)
		user, err = domain.NewUser(uuid.NewString(), name, profile.Email, role, domain.Provider(provider))
		if err != nil {
			return nil, mapError(err)
		}
		user.Image = profile.Picture
		if user, err = s.repo.Save(ctx, user); err != nil {
			return nil, err
		}
		if user.IsSeller() {
			if user, err = s.provisionStore(ctx, user, ""); err != nil {
				return nil, err
			}
		}
		created = true
	default:
		return nil, err
	}
	result, err := s.startSession(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	result.Created = created
	return result, nil
}

// Authenticate resolves a bearer token into the calling principal.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, mapError(ports.ErrInvalidToken)
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, mapError(ports.ErrInvalidToken)
	}
	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, mapError(err)
	}
	if session.Expired(s.now()) {
		return nil, mapError(ports.ErrSessionNotFound)
	}
	return &domain.Principal{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
		StoreID:   claims.StoreID,
		SessionID: claims.SessionID,
	}, nil
}

// Logout revokes the session backing the caller's token.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// FindOrCreateGuest returns the account for a checkout email, creating a password-less customer if needed.
func (s *Service) FindOrCreateGuest(ctx context.Context, email, name string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		name = "Client"
	}
	user, err := domain.NewUser(uuid.NewString(), name, email, domain.RoleCustomer, domain.ProviderGuest)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, user)
}

// GetUser loads a user by id.
func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) provisionStore(ctx context.Context, user *domain.User, storeName string) (*domain.User, error) {
	if s.stores == nil {
		return user, nil
	}
	if strings.TrimSpace(storeName) == "" {
		storeName = domain.DefaultStoreName(user.Name)
	}
	storeID, err := s.stores.ProvisionStore(ctx, user.ID, storeName)
	if err != nil {
		return nil, fmt.Errorf("provision store: %w", err)
	}
	user.StoreID = storeID
	return s.repo.Save(ctx, user)
}

func (s *Service) startSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	now := s.now()
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	token, err := s.tokens.Issue(ports.TokenClaims{
		SessionID: session.ID,
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		StoreID:   user.StoreID,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &ports.AuthResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
		Redirect:  user.Role.RedirectPath(),
	}, nil
}

var _ ports.Service = (*Service)(nil)
