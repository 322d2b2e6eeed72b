package marketplaceserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	identitymapper "github.com/Apurer/go-gin-marketplace/internal/domains/identity/adapters/http/mapper"
	identityports "github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
)

// RegisterRequest is the signup payload for clients and sellers.
type RegisterRequest struct {
	Name      string `json:"name" binding:"required,max=120"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	StoreName string `json:"storeName,omitempty" binding:"omitempty,max=120"`
}

// LoginRequest is the credentials sign-in payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OAuthRequest carries a provider ID token and the role picked on the signup page.
type OAuthRequest struct {
	IDToken string `json:"idToken" binding:"required"`
	Role    string `json:"role,omitempty"`
}

type AuthAPI struct {
	service identityports.Service
}

func NewAuthAPI(service identityports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /api/auth/register/client
func (api *AuthAPI) RegisterClient(c *gin.Context) {
	api.register(c, api.service.RegisterClient, "Compte client créé avec succès")
}

// Post /api/auth/register/seller
func (api *AuthAPI) RegisterSeller(c *gin.Context) {
	api.register(c, api.service.RegisterSeller, "Compte vendeur créé avec succès")
}

func (api *AuthAPI) register(c *gin.Context, fn func(ctx context.Context, input identityports.RegisterInput) (*identityports.AuthResult, error), message string) {
	var body RegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := fn(c.Request.Context(), identityports.RegisterInput{
		Name:      body.Name,
		Email:     body.Email,
		Password:  body.Password,
		StoreName: body.StoreName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, identitymapper.FromAuthResult(result, message))
}

// Post /api/auth/login
func (api *AuthAPI) Login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := api.service.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, identitymapper.FromAuthResult(result, "Connexion réussie"))
}

// Post /api/auth/oauth/:provider
func (api *AuthAPI) OAuthSignIn(c *gin.Context) {
	var body OAuthRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := api.service.SignInWithOAuth(c.Request.Context(), identityports.OAuthSignInInput{
		Provider:      strings.ToLower(c.Param("provider")),
		IDToken:       body.IDToken,
		RequestedRole: body.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, identitymapper.FromAuthResult(result, "Connexion réussie"))
}

// Post /api/auth/logout
func (api *AuthAPI) Logout(c *gin.Context) {
	principal, _ := PrincipalFrom(c)
	if err := api.service.Logout(c.Request.Context(), principal.SessionID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/auth/me
func (api *AuthAPI) Me(c *gin.Context) {
	principal, _ := PrincipalFrom(c)
	user, err := api.service.GetUser(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, identitymapper.FromDomainUser(user))
}
