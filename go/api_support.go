package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	supportmapper "github.com/Apurer/go-gin-marketplace/internal/domains/support/adapters/http/mapper"
	supportports "github.com/Apurer/go-gin-marketplace/internal/domains/support/ports"
)

type SupportAPI struct {
	service supportports.Service
}

func NewSupportAPI(service supportports.Service) SupportAPI {
	return SupportAPI{service: service}
}

// Post /api/tickets
func (api *SupportAPI) CreateTicket(c *gin.Context) {
	var body supportmapper.CreateTicketRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	var userID, name, email string
	if principal, ok := PrincipalFrom(c); ok {
		userID, name, email = principal.UserID, principal.Name, principal.Email
	}
	ticket, err := api.service.CreateTicket(c.Request.Context(), body.ToInput(userID, name, email))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Votre demande a été envoyée",
		"ticket":  supportmapper.FromDomainTicket(ticket),
	})
}

// Get /api/tickets
func (api *SupportAPI) ListMyTickets(c *gin.Context) {
	principal, _ := PrincipalFrom(c)
	tickets, err := api.service.ListMyTickets(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supportmapper.FromDomainTickets(tickets))
}

// Get /api/tickets/:id
func (api *SupportAPI) GetTicket(c *gin.Context) {
	principal, _ := PrincipalFrom(c)
	ticket, err := api.service.GetTicket(c.Request.Context(), principal.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supportmapper.FromDomainTicket(ticket))
}
