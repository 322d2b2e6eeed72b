package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Guards run before HandlerFunc, in order.
	Guards []gin.HandlerFunc
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every bounded context.
type ApiHandleFunctions struct {
	AuthAPI         AuthAPI
	CatalogAPI      CatalogAPI
	OrderAPI        OrderAPI
	CartAPI         CartAPI
	SchoolListAPI   SchoolListAPI
	SupportAPI      SupportAPI
	NotificationAPI NotificationAPI
	StatsAPI        StatsAPI
}

// NewRouter returns a new router with the default gin middleware.
func NewRouter(authenticator Authenticator, handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), authenticator, handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing engine. The bearer
// middleware runs on every route; guards decide whether a principal is required.
func NewRouterWithGinEngine(router *gin.Engine, authenticator Authenticator, handleFunctions ApiHandleFunctions) *gin.Engine {
	RegisterValidators()
	router.Use(Authenticate(authenticator))
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		chain := append(append([]gin.HandlerFunc{}, route.Guards...), route.HandlerFunc)
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, chain...)
		case http.MethodPost:
			router.POST(route.Pattern, chain...)
		case http.MethodPut:
			router.PUT(route.Pattern, chain...)
		case http.MethodPatch:
			router.PATCH(route.Pattern, chain...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, chain...)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(h ApiHandleFunctions) []Route {
	user := []gin.HandlerFunc{RequireUser()}
	seller := []gin.HandlerFunc{RequireRole(RoleSeller)}
	manager := []gin.HandlerFunc{RequireRole(RoleManager)}

	return []Route{
		{Name: "Healthz", Method: http.MethodGet, Pattern: "/healthz", HandlerFunc: Healthz},

		// identity
		{"RegisterClient", http.MethodPost, "/api/auth/register/client", nil, h.AuthAPI.RegisterClient},
		{"RegisterSeller", http.MethodPost, "/api/auth/register/seller", nil, h.AuthAPI.RegisterSeller},
		{"Login", http.MethodPost, "/api/auth/login", nil, h.AuthAPI.Login},
		{"OAuthSignIn", http.MethodPost, "/api/auth/oauth/:provider", nil, h.AuthAPI.OAuthSignIn},
		{"Logout", http.MethodPost, "/api/auth/logout", user, h.AuthAPI.Logout},
		{"Me", http.MethodGet, "/api/auth/me", user, h.AuthAPI.Me},

		// storefront catalog
		{"ListProducts", http.MethodGet, "/api/products", nil, h.CatalogAPI.ListProducts},
		{"GetProduct", http.MethodGet, "/api/products/:id", nil, h.CatalogAPI.GetProduct},
		{"ListCategories", http.MethodGet, "/api/categories", nil, h.CatalogAPI.ListCategories},

		// seller catalog
		{"ListSellerProducts", http.MethodGet, "/api/seller/products", seller, h.CatalogAPI.ListSellerProducts},
		{"CreateProduct", http.MethodPost, "/api/seller/products", seller, h.CatalogAPI.CreateProduct},
		{"UpdateProduct", http.MethodPut, "/api/seller/products", seller, h.CatalogAPI.UpdateProduct},
		{"DeleteProduct", http.MethodDelete, "/api/seller/products", seller, h.CatalogAPI.DeleteProduct},
		{"RequestImageUpload", http.MethodPost, "/api/seller/products/:id/images", seller, h.CatalogAPI.RequestImageUpload},
		{"AttachImage", http.MethodPut, "/api/seller/products/:id/images", seller, h.CatalogAPI.AttachImage},
		{"ListSellerCategories", http.MethodGet, "/api/seller/categories", seller, h.CatalogAPI.ListCategories},
		{"CreateCategory", http.MethodPost, "/api/seller/categories", seller, h.CatalogAPI.CreateCategory},

		// orders
		{"Checkout", http.MethodPost, "/api/orders", nil, h.OrderAPI.Checkout},
		{"ListMyOrders", http.MethodGet, "/api/orders", user, h.OrderAPI.ListMyOrders},
		{"GetMyOrder", http.MethodGet, "/api/orders/:id", user, h.OrderAPI.GetMyOrder},
		{"CancelOrder", http.MethodPatch, "/api/orders", user, h.OrderAPI.CancelOrder},
		{"ListStoreOrders", http.MethodGet, "/api/seller/orders", seller, h.OrderAPI.ListStoreOrders},
		{"UpdateOrderStatus", http.MethodPatch, "/api/seller/orders/:id", seller, h.OrderAPI.UpdateStatus},

		// cart
		{"GetCart", http.MethodGet, "/api/cart", nil, h.CartAPI.GetCart},
		{"ClearCart", http.MethodDelete, "/api/cart", nil, h.CartAPI.ClearCart},
		{"AddCartItem", http.MethodPost, "/api/cart/items", nil, h.CartAPI.AddItem},
		{"UpdateCartItem", http.MethodPatch, "/api/cart/items/:id", nil, h.CartAPI.UpdateItem},
		{"RemoveCartItem", http.MethodDelete, "/api/cart/items/:id", nil, h.CartAPI.RemoveItem},
		{"AddSchoolListToCart", http.MethodPost, "/api/cart/school-lists/:id", nil, h.CartAPI.AddSchoolList},

		// school lists
		{"ListPublishedSchoolLists", http.MethodGet, "/api/listes-scolaires/published", nil, h.SchoolListAPI.ListPublished},
		{"GetSchoolList", http.MethodGet, "/api/listes-scolaires/:id", nil, h.SchoolListAPI.GetList},
		{"SellerSchoolLists", http.MethodGet, "/api/seller/listes-scolaires", seller, h.SchoolListAPI.ListPublished},
		{"ProposeProduct", http.MethodPost, "/api/seller/listes-scolaires/besoins/:besoinId/propositions", seller, h.SchoolListAPI.ProposeProduct},
		{"ManagerSchoolLists", http.MethodGet, "/api/manager/listes-scolaires", manager, h.SchoolListAPI.ListAll},
		{"CreateSchoolList", http.MethodPost, "/api/manager/listes-scolaires", manager, h.SchoolListAPI.CreateList},
		{"PublishSchoolList", http.MethodPost, "/api/manager/listes-scolaires/:id/publish", manager, h.SchoolListAPI.Publish},
		{"ArchiveSchoolList", http.MethodPost, "/api/manager/listes-scolaires/:id/archive", manager, h.SchoolListAPI.Archive},
		{"ValidateAssociation", http.MethodPost, "/api/manager/listes-scolaires/besoins/:besoinId/associations/:associationId/validate", manager, h.SchoolListAPI.ValidateAssociation},

		// support
		{"CreateTicket", http.MethodPost, "/api/tickets", nil, h.SupportAPI.CreateTicket},
		{"ListMyTickets", http.MethodGet, "/api/tickets", user, h.SupportAPI.ListMyTickets},
		{"GetTicket", http.MethodGet, "/api/tickets/:id", user, h.SupportAPI.GetTicket},

		// notifications
		{"ListNotifications", http.MethodGet, "/api/notifications", user, h.NotificationAPI.List},
		{"MarkNotificationRead", http.MethodPatch, "/api/notifications/:id/read", user, h.NotificationAPI.MarkRead},

		// platform
		{"Statistics", http.MethodGet, "/api/stats", manager, h.StatsAPI.Statistics},
	}
}
