package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartmapper "github.com/Apurer/go-gin-marketplace/internal/domains/cart/adapters/http/mapper"
	cartdomain "github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-marketplace/internal/domains/cart/ports"
	apierrors "github.com/Apurer/go-gin-marketplace/internal/shared/errors"
)

type CartAPI struct {
	service cartports.Service
}

func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// Get /api/cart
func (api *CartAPI) GetCart(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusOK, cartmapper.FromDomainCart(&cartdomain.Cart{Items: []cartdomain.Item{}}))
		return
	}
	cart, err := api.service.Get(c.Request.Context(), owner)
	api.respond(c, cart, err)
}

// Delete /api/cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	owner, ok := requireCartOwner(c)
	if !ok {
		return
	}
	cart, err := api.service.Clear(c.Request.Context(), owner)
	api.respond(c, cart, err)
}

// Post /api/cart/items
func (api *CartAPI) AddItem(c *gin.Context) {
	owner, ok := requireCartOwner(c)
	if !ok {
		return
	}
	var body cartmapper.AddItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := api.service.AddProduct(c.Request.Context(), owner, body.ProductID, body.Quantity)
	api.respond(c, cart, err)
}

// Patch /api/cart/items/:id
func (api *CartAPI) UpdateItem(c *gin.Context) {
	owner, ok := requireCartOwner(c)
	if !ok {
		return
	}
	var body cartmapper.UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := api.service.UpdateQuantity(c.Request.Context(), owner, c.Param("id"), *body.Quantity)
	api.respond(c, cart, err)
}

// Delete /api/cart/items/:id
func (api *CartAPI) RemoveItem(c *gin.Context) {
	owner, ok := requireCartOwner(c)
	if !ok {
		return
	}
	cart, err := api.service.RemoveItem(c.Request.Context(), owner, c.Param("id"))
	api.respond(c, cart, err)
}

// Post /api/cart/school-lists/:id
func (api *CartAPI) AddSchoolList(c *gin.Context) {
	owner, ok := requireCartOwner(c)
	if !ok {
		return
	}
	cart, err := api.service.AddSchoolList(c.Request.Context(), owner, c.Param("id"))
	api.respond(c, cart, err)
}

func (api *CartAPI) respond(c *gin.Context, cart *cartdomain.Cart, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromDomainCart(cart))
}

func requireCartOwner(c *gin.Context) (string, bool) {
	owner, ok := cartOwner(c)
	if !ok {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("sign in or send an "+CartTokenHeader+" header"))
		return "", false
	}
	return owner, true
}
