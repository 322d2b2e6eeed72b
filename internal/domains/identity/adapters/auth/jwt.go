package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
)

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

// Claims is the JWT body issued to marketplace users.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	StoreID string `json:"store_id,omitempty"`
}

// JWTIssuer signs HS256 access tokens.
type JWTIssuer struct {
	secret []byte
	issuer string
}

// NewJWTIssuer builds an issuer; the secret must not be empty.
func NewJWTIssuer(secret, issuer string) (*JWTIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if issuer == "" {
		issuer = "marketplace-api"
	}
	return &JWTIssuer{secret: []byte(secret), issuer: issuer}, nil
}

// Issue signs the claims; the session id travels as the token id.
func (j *JWTIssuer) Issue(claims ports.TokenClaims) (string, error) {
	now := time.Now()
	body := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.SessionID,
			Issuer:    j.issuer,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
		Email:   claims.Email,
		Name:    claims.Name,
		Role:    string(claims.Role),
		StoreID: claims.StoreID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, body)
	return token.SignedString(j.secret)
}

// Parse validates signature, issuer and expiry.
func (j *JWTIssuer) Parse(raw string) (*ports.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ports.ErrInvalidToken
		}
		return j.secret, nil
	}, jwt.WithIssuer(j.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ports.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, ports.ErrInvalidToken
	}
	result := &ports.TokenClaims{
		SessionID: claims.ID,
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      domain.Role(claims.Role),
		StoreID:   claims.StoreID,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}
