package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	googleclient "github.com/Apurer/go-gin-marketplace/internal/clients/http/google"
	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
)

var _ ports.OAuthVerifier = (*Verifier)(nil)

// Verifier implements the OAuth verification port against Google.
type Verifier struct {
	client   *googleclient.Client
	clientID string
}

// NewVerifier wires the tokeninfo client; clientID is the expected audience.
func NewVerifier(client *googleclient.Client, clientID string) *Verifier {
	return &Verifier{client: client, clientID: strings.TrimSpace(clientID)}
}

// Verify checks the token with Google and returns the verified profile.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*ports.OAuthProfile, error) {
	if v == nil || v.client == nil {
		return nil, errors.New("google verifier not configured")
	}
	info, err := v.client.TokenInfo(ctx, idToken)
	if err != nil {
		if errors.Is(err, googleclient.ErrTokenRejected) {
			return nil, fmt.Errorf("%w: %w", ports.ErrOAuthVerification, err)
		}
		return nil, err
	}
	if v.clientID != "" && info.Audience != v.clientID {
		return nil, fmt.Errorf("%w: audience mismatch", ports.ErrOAuthVerification)
	}
	if strings.TrimSpace(info.Email) == "" || !info.Verified() {
		return nil, fmt.Errorf("%w: email not verified", ports.ErrOAuthVerification)
	}
	return &ports.OAuthProfile{
		Subject:       info.Subject,
		Email:         info.Email,
		EmailVerified: true,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}
