package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	listmapper "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/adapters/http/mapper"
	listports "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
)

type SchoolListAPI struct {
	service listports.Service
}

func NewSchoolListAPI(service listports.Service) SchoolListAPI {
	return SchoolListAPI{service: service}
}

// Get /api/listes-scolaires/published
func (api *SchoolListAPI) ListPublished(c *gin.Context) {
	lists, err := api.service.ListPublished(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listmapper.FromDomainListes(lists))
}

// Get /api/listes-scolaires/:id
func (api *SchoolListAPI) GetList(c *gin.Context) {
	list, err := api.service.GetList(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listmapper.FromDomainListe(list))
}

// Post /api/seller/listes-scolaires/besoins/:besoinId/propositions
func (api *SchoolListAPI) ProposeProduct(c *gin.Context) {
	var body listmapper.ProposeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	principal, _ := PrincipalFrom(c)
	list, err := api.service.ProposeProduct(c.Request.Context(), body.ToInput(c.Param("besoinId"), principal.StoreID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listmapper.FromDomainListe(list))
}

// Get /api/manager/listes-scolaires
func (api *SchoolListAPI) ListAll(c *gin.Context) {
	lists, err := api.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listmapper.FromDomainListes(lists))
}

// Post /api/manager/listes-scolaires
func (api *SchoolListAPI) CreateList(c *gin.Context) {
	var body listmapper.CreateListRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	list, err := api.service.CreateList(c.Request.Context(), body.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listmapper.FromDomainListe(list))
}

// Post /api/manager/listes-scolaires/:id/publish
func (api *SchoolListAPI) Publish(c *gin.Context) {
	list, err := api.service.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listmapper.FromDomainListe(list))
}

// Post /api/manager/listes-scolaires/:id/archive
func (api *SchoolListAPI) Archive(c *gin.Context) {
	list, err := api.service.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listmapper.FromDomainListe(list))
}

// Post /api/manager/listes-scolaires/besoins/:besoinId/associations/:associationId/validate
func (api *SchoolListAPI) ValidateAssociation(c *gin.Context) {
	list, err := api.service.ValidateAssociation(c.Request.Context(), c.Param("besoinId"), c.Param("associationId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listmapper.FromDomainListe(list))
}
