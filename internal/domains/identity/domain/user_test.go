package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewUser_NormalisesEmailAndDefaultsRole(t *testing.T) {
	user, err := NewUser("u-1", "  Alice ", " Alice@Example.COM ", "", ProviderCredentials)
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, RoleCustomer, user.Role)
}

func TestNewUser_RejectsInvalidInput(t *testing.T) {
	_, err := NewUser("u-1", "", "a@b.c", RoleCustomer, ProviderCredentials)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewUser("u-1", "Alice", "not-an-email", RoleCustomer, ProviderCredentials)
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser("u-1", "Alice", "a@b.c", Role("ADMIN"), ProviderCredentials)
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestSignupRole_OnlyAllowsCustomerOrSeller(t *testing.T) {
	require.Equal(t, RoleSeller, SignupRole("seller"))
	require.Equal(t, RoleCustomer, SignupRole("MANAGER"))
	require.Equal(t, RoleCustomer, SignupRole(""))
}

func TestRole_RedirectPath(t *testing.T) {
	require.Equal(t, "/seller/dashboard", RoleSeller.RedirectPath())
	require.Equal(t, "/manager/dashboard", RoleManager.RedirectPath())
	require.Equal(t, "/dashboard", RoleCustomer.RedirectPath())
}

func TestValidatePassword(t *testing.T) {
	require.ErrorIs(t, ValidatePassword(" "), ErrEmptyPassword)
	require.ErrorIs(t, ValidatePassword("12345"), ErrWeakPassword)
	require.NoError(t, ValidatePassword("123456"))
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	require.True(t, Session{ExpiresAt: now.Add(-time.Second)}.Expired(now))
	require.False(t, Session{ExpiresAt: now.Add(time.Hour)}.Expired(now))
	require.False(t, Session{}.Expired(now))
}

func TestDefaultStoreName(t *testing.T) {
	require.Equal(t, "Alice's Store", DefaultStoreName(" Alice "))
}
