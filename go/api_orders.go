package marketplaceserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-marketplace/internal/domains/orders/adapters/http/mapper"
	orderdomain "github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

type OrderAPI struct {
	service  orderports.Service
	checkout orderports.CheckoutOrchestrator
}

// NewOrderAPI serves order routes. Checkout goes through the orchestrator when one is given.
func NewOrderAPI(service orderports.Service, checkout orderports.CheckoutOrchestrator) OrderAPI {
	if checkout == nil {
		checkout = service
	}
	return OrderAPI{service: service, checkout: checkout}
}

// Post /api/orders
func (api *OrderAPI) Checkout(c *gin.Context) {
	var body ordermapper.CheckoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	customerID := ""
	if principal, ok := PrincipalFrom(c); ok {
		customerID = principal.UserID
	}
	input := body.ToCheckoutInput(customerID, strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)))
	result, err := api.checkout.Checkout(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.CheckoutResponse{
		Success:  true,
		Message:  fmt.Sprintf("%d order(s) created", len(result.Orders)),
		Orders:   ordermapper.FromDomainOrders(result.Orders),
		OrderIDs: result.Refs(),
	})
}

// Get /api/orders
func (api *OrderAPI) ListMyOrders(c *gin.Context) {
	principal, _ := PrincipalFrom(c)
	orders, err := api.service.ListCustomerOrders(c.Request.Context(), principal.UserID, orderdomain.Status(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /api/orders/:id
func (api *OrderAPI) GetMyOrder(c *gin.Context) {
	principal, _ := PrincipalFrom(c)
	order, err := api.service.GetOrder(c.Request.Context(), principal.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Patch /api/orders
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	var body ordermapper.CancelRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	principal, _ := PrincipalFrom(c)
	result, err := api.service.CancelOrder(c.Request.Context(), principal.UserID, body.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.CancelResponse{
		Success: true,
		Message: "order cancelled",
		Order:   ordermapper.FromDomainOrder(result.Order),
	})
}

// Get /api/seller/orders
func (api *OrderAPI) ListStoreOrders(c *gin.Context) {
	principal, _ := PrincipalFrom(c)
	orders, err := api.service.ListStoreOrders(c.Request.Context(), principal.StoreID, orderdomain.Status(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Patch /api/seller/orders/:id
func (api *OrderAPI) UpdateStatus(c *gin.Context) {
	var body ordermapper.StatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	principal, _ := PrincipalFrom(c)
	order, err := api.service.UpdateStatus(c.Request.Context(), principal.StoreID, c.Param("id"), orderdomain.Status(body.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}
