package domain

import "time"

// Session is the server-side record of an issued token; deleting it revokes the token.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID    string
	Email     string
	Name      string
	Role      Role
	StoreID   string
	SessionID string
}

// IsSeller reports whether the caller may use seller endpoints.
func (p Principal) IsSeller() bool {
	return p.Role == RoleSeller
}

// IsManager reports whether the caller may use manager endpoints.
func (p Principal) IsManager() bool {
	return p.Role == RoleManager
}
