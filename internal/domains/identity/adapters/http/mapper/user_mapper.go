package mapper

import (
	identitydomain "github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
	identityports "github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
)

// User is the public projection of an account. Password hashes never leave the service.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Image   string `json:"image,omitempty"`
	Role    string `json:"role"`
	StoreID string `json:"storeId,omitempty"`
}

// AuthResponse is returned by register, login and OAuth sign-in.
type AuthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Redirect  string `json:"redirect"`
	User      User   `json:"user"`
}

// FromDomainUser converts a domain user into its transport representation.
func FromDomainUser(user *identitydomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Image:   user.Image,
		Role:    string(user.Role),
		StoreID: user.StoreID,
	}
}

// FromPrincipal projects the authenticated caller.
func FromPrincipal(p *identitydomain.Principal) User {
	if p == nil {
		return User{}
	}
	return User{ID: p.UserID, Name: p.Name, Email: p.Email, Role: string(p.Role), StoreID: p.StoreID}
}

// FromAuthResult builds the sign-in response body.
func FromAuthResult(result *identityports.AuthResult, message string) AuthResponse {
	if result == nil {
		return AuthResponse{}
	}
	return AuthResponse{
		Success:   true,
		Message:   message,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Redirect:  result.Redirect,
		User:      FromDomainUser(result.User),
	}
}
