package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
)

// DefaultTokenInfoURL is Google's ID token introspection endpoint.
const DefaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// ErrTokenRejected is returned when Google refuses the supplied token.
var ErrTokenRejected = errors.New("google rejected the id token")

// TokenInfo is the subset of the tokeninfo response used for sign-in.
type TokenInfo struct {
	Audience      string `json:"aud"`
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Expiry        string `json:"exp"`
}

// Verified reports whether Google vouches for the email address.
func (t TokenInfo) Verified() bool {
	return strings.EqualFold(t.EmailVerified, "true")
}

// Client calls the Google tokeninfo endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures the Google client.
type ClientOption func(*Client)

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL points the client at a different tokeninfo endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// NewClient instantiates the tokeninfo client with sane defaults.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultTokenInfoURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// TokenInfo introspects an ID token.
func (c *Client) TokenInfo(ctx context.Context, idToken string) (*TokenInfo, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("google client not configured")
	}
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, fmt.Errorf("%w: empty token", ErrTokenRejected)
	}
	query, err := runtime.StyleParamWithLocation("form", true, "id_token", runtime.ParamLocationQuery, idToken)
	if err != nil {
		return nil, fmt.Errorf("encode id_token: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call google tokeninfo: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read google tokeninfo: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: %s", ErrTokenRejected, resp.Status)
	default:
		return nil, fmt.Errorf("google tokeninfo unexpected status: %s", resp.Status)
	}
	var info TokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode google tokeninfo: %w", err)
	}
	return &info, nil
}
