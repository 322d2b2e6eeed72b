package domain

import (
	"errors"
	"strings"
	"time"
)

// Role enumerates marketplace personas.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
	RoleManager  Role = "MANAGER"
)

// Provider records how an account was created.
type Provider string

const (
	ProviderCredentials Provider = "credentials"
	ProviderGoogle      Provider = "google"
	ProviderGuest       Provider = "guest"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

var (
	ErrEmptyName     = errors.New("name is required")
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrInvalidRole   = errors.New("role is invalid")
)

// User is the identity aggregate shared by customers, sellers and managers.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Image        string
	Role         Role
	Provider     Provider
	StoreID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a user with a normalised email and a valid role.
func NewUser(id, name, email string, role Role, provider Provider) (*User, error) {
	user := &User{ID: id, Provider: provider}
	if err := user.Rename(name); err != nil {
		return nil, err
	}
	if err := user.ChangeEmail(email); err != nil {
		return nil, err
	}
	if err := user.AssignRole(role); err != nil {
		return nil, err
	}
	return user, nil
}

// Rename trims and validates the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// ChangeEmail lower-cases and validates the login email.
func (u *User) ChangeEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// AssignRole accepts one of the known roles; empty defaults to customer.
func (u *User) AssignRole(role Role) error {
	if role == "" {
		role = RoleCustomer
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	u.Role = role
	return nil
}

// HasPassword reports whether credentials login is possible for the account.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// IsSeller reports whether the user operates a store.
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.Rename(u.Name); err != nil {
		return err
	}
	if err := u.ChangeEmail(u.Email); err != nil {
		return err
	}
	return u.AssignRole(u.Role)
}

// Valid reports whether the role is one of the known personas.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleManager:
		return true
	default:
		return false
	}
}

// SignupRole narrows a requested role to the ones self-service signup may grant.
func SignupRole(requested string) Role {
	if Role(strings.ToUpper(strings.TrimSpace(requested))) == RoleSeller {
		return RoleSeller
	}
	return RoleCustomer
}

// RedirectPath returns the landing page for the role after sign-in.
func (r Role) RedirectPath() string {
	switch r {
	case RoleSeller:
		return "/seller/dashboard"
	case RoleManager:
		return "/manager/dashboard"
	default:
		return "/dashboard"
	}
}

// ValidatePassword enforces the registration password policy.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// NormalizeEmail trims and lower-cases an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultStoreName names the store provisioned for a new seller.
func DefaultStoreName(userName string) string {
	return strings.TrimSpace(userName) + "'s Store"
}
