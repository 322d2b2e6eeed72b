package marketplaceserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
	apierrors "github.com/Apurer/go-gin-marketplace/internal/shared/errors"
)

const (
	principalKey = "marketplace.principal"

	// CartTokenHeader identifies an anonymous cart.
	CartTokenHeader = "X-Cart-Token"

	RoleSeller  = identitydomain.RoleSeller
	RoleManager = identitydomain.RoleManager
)

// Authenticator resolves a bearer token into the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identitydomain.Principal, error)
}

// Authenticate attaches the principal of a valid bearer token to the context.
// Requests without a token pass through as guests; a bad token is rejected.
func Authenticate(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || authenticator == nil {
			c.Next()
			return
		}
		principal, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			apierrors.Respond(c, apierrors.NewUnauthorizedProblem("session is invalid or expired"))
			c.Abort()
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireUser rejects requests without an authenticated principal.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFrom(c); !ok {
			apierrors.Respond(c, apierrors.NewUnauthorizedProblem("authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole admits principals holding one of the roles. Sellers must also own a store.
func RequireRole(roles ...identitydomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			apierrors.Respond(c, apierrors.NewUnauthorizedProblem("authentication required"))
			c.Abort()
			return
		}
		for _, role := range roles {
			if principal.Role != role {
				continue
			}
			if role == identitydomain.RoleSeller && principal.StoreID == "" {
				break
			}
			c.Next()
			return
		}
		apierrors.Respond(c, apierrors.ErrForbidden.WithDetail("insufficient role for this resource"))
		c.Abort()
	}
}

// PrincipalFrom returns the authenticated caller, if any.
func PrincipalFrom(c *gin.Context) (*identitydomain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*identitydomain.Principal)
	return principal, ok && principal != nil
}

// cartOwner keys the cart by user id, or by the anonymous cart token.
func cartOwner(c *gin.Context) (string, bool) {
	if principal, ok := PrincipalFrom(c); ok {
		return "user:" + principal.UserID, true
	}
	token := strings.TrimSpace(c.GetHeader(CartTokenHeader))
	if token == "" {
		return "", false
	}
	return "guest:" + token, true
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
