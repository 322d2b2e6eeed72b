package marketplaceserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	cartgateways "github.com/Apurer/go-gin-marketplace/internal/domains/cart/adapters/gateways"
	cartmemory "github.com/Apurer/go-gin-marketplace/internal/domains/cart/adapters/memory"
	cartapp "github.com/Apurer/go-gin-marketplace/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/application"
	"github.com/Apurer/go-gin-marketplace/internal/domains/identity/adapters/auth"
	identitymemory "github.com/Apurer/go-gin-marketplace/internal/domains/identity/adapters/memory"
	identityapp "github.com/Apurer/go-gin-marketplace/internal/domains/identity/application"
	identitydomain "github.com/Apurer/go-gin-marketplace/internal/domains/identity/domain"
	notificationsemail "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/adapters/email"
	notificationsmemory "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/adapters/memory"
	notificationsapp "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/application"
	ordergateways "github.com/Apurer/go-gin-marketplace/internal/domains/orders/adapters/gateways"
	ordermemory "github.com/Apurer/go-gin-marketplace/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application"
	listgateways "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/adapters/gateways"
	listmemory "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/adapters/memory"
	listapp "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/application"
	storesmemory "github.com/Apurer/go-gin-marketplace/internal/domains/stores/adapters/memory"
	storesapp "github.com/Apurer/go-gin-marketplace/internal/domains/stores/application"
	supportgateways "github.com/Apurer/go-gin-marketplace/internal/domains/support/adapters/gateways"
	supportmemory "github.com/Apurer/go-gin-marketplace/internal/domains/support/adapters/memory"
	supportapp "github.com/Apurer/go-gin-marketplace/internal/domains/support/application"
)

const managerToken = "manager-token"

// managerAuthenticator grants a fixed manager principal, since managers cannot self-register.
type managerAuthenticator struct {
	inner Authenticator
}

func (a managerAuthenticator) Authenticate(ctx context.Context, token string) (*identitydomain.Principal, error) {
	if token == managerToken {
		return &identitydomain.Principal{UserID: "manager-1", Email: "manager@example.com", Name: "Manager", Role: identitydomain.RoleManager, SessionID: "s-manager"}, nil
	}
	return a.inner.Authenticate(ctx, token)
}

type testServer struct {
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores := storesapp.NewService(storesmemory.NewRepository())
	issuer, err := auth.NewJWTIssuer("test-secret", "marketplace-test")
	require.NoError(t, err)
	identity := identityapp.NewService(identitymemory.NewRepository(), identitymemory.NewSessionStore(), issuer,
		auth.NewBcryptHasher(bcrypt.MinCost), identityapp.WithStoreProvisioner(stores))

	catalogRepo := catalogmemory.NewRepository()
	catalog := catalogapp.NewService(catalogRepo, catalogRepo, catalogapp.WithIdempotencyStore(catalogmemory.NewIdempotencyStore()))

	notifications := notificationsapp.NewService(notificationsmemory.NewRepository(), notificationsemail.NewSimulatedSender(nil))
	orders := ordersapp.NewService(ordermemory.NewRepository(), ordergateways.NewCatalogInventory(catalog),
		ordersapp.WithCustomers(ordergateways.NewIdentityCustomers(identity)),
		ordersapp.WithRevenueLedger(stores),
		ordersapp.WithNotifier(ordergateways.NewInAppNotifier(notifications)),
	)
	lists := listapp.NewService(listmemory.NewRepository(), listapp.WithProductOwnership(listgateways.NewCatalogOwnership(catalog)))
	cart := cartapp.NewService(cartmemory.NewStore(), cartgateways.NewCatalogProducts(catalog), cartgateways.NewPublishedSchoolLists(lists))
	support := supportapp.NewService(supportmemory.NewRepository(), supportapp.WithMailer(supportgateways.NewNotificationsMailer(notifications)))

	router := NewRouterWithGinEngine(gin.New(), managerAuthenticator{inner: identity}, ApiHandleFunctions{
		AuthAPI:         NewAuthAPI(identity),
		CatalogAPI:      NewCatalogAPI(catalog),
		OrderAPI:        NewOrderAPI(orders, nil),
		CartAPI:         NewCartAPI(cart),
		SchoolListAPI:   NewSchoolListAPI(lists),
		SupportAPI:      NewSupportAPI(support),
		NotificationAPI: NewNotificationAPI(notifications),
		StatsAPI:        NewStatsAPI(stores),
	})
	return &testServer{router: router}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type authBody struct {
	Token string `json:"token"`
	User  struct {
		ID      string `json:"id"`
		Role    string `json:"role"`
		StoreID string `json:"storeId"`
	} `json:"user"`
}

type problemBody struct {
	Status     int            `json:"status"`
	Error      string         `json:"error"`
	Instance   string         `json:"instance"`
	Extensions map[string]any `json:"extensions"`
}

func (s *testServer) register(t *testing.T, kind, email string) authBody {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register/"+kind, map[string]any{
		"name": "Test " + kind, "email": email, "password": "secret123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[authBody](t, rec)
}

func (s *testServer) createProduct(t *testing.T, token string, body map[string]any) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/seller/products", body, bearer(token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)["id"].(string)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_RegisterLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	seller := s.register(t, "seller", "seller@example.com")
	assert.Equal(t, "SELLER", seller.User.Role)
	assert.NotEmpty(t, seller.User.StoreID)

	rec := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "seller@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[authBody](t, rec)

	rec = s.do(t, http.MethodGet, "/api/auth/me", nil, bearer(login.Token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, seller.User.ID, decode[map[string]any](t, rec)["id"])

	rec = s.do(t, http.MethodPost, "/api/auth/register/client", map[string]any{
		"name": "Dup", "email": "seller@example.com", "password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[problemBody](t, rec).Error, "already registered")

	rec = s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "seller@example.com", "password": "wrong-pass"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_LogoutRevokesSession(t *testing.T) {
	s := newTestServer(t)
	client := s.register(t, "client", "client@example.com")

	rec := s.do(t, http.MethodPost, "/api/auth/logout", nil, bearer(client.Token))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auth/me", nil, bearer(client.Token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuards(t *testing.T) {
	s := newTestServer(t)
	client := s.register(t, "client", "client@example.com")

	rec := s.do(t, http.MethodGet, "/api/seller/products", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	rec = s.do(t, http.MethodGet, "/api/seller/products", nil, bearer(client.Token))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/orders", nil, bearer("not-a-jwt"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/stats", nil, bearer(client.Token))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCatalog_SellerCRUDAndStorefront(t *testing.T) {
	s := newTestServer(t)
	seller := s.register(t, "seller", "seller@example.com")

	rec := s.do(t, http.MethodPost, "/api/seller/categories", map[string]string{"name": "Fournitures"}, bearer(seller.Token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	categoryID := decode[map[string]any](t, rec)["id"].(string)

	id := s.createProduct(t, seller.Token, map[string]any{"name": "Cahier", "price": 3.5, "stock": 10, "categoryId": categoryID})

	rec = s.do(t, http.MethodGet, "/api/products?categoryId="+categoryID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = s.do(t, http.MethodPut, "/api/seller/products?id="+id, map[string]any{"isActive": false}, bearer(seller.Token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/products/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/seller/products", map[string]any{"stock": 1}, bearer(seller.Token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	other := s.register(t, "seller", "other@example.com")
	rec = s.do(t, http.MethodDelete, "/api/seller/products?id="+id, nil, bearer(other.Token))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/seller/products?id="+id, nil, bearer(seller.Token))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalog_CreateProductIsIdempotent(t *testing.T) {
	s := newTestServer(t)
	seller := s.register(t, "seller", "seller@example.com")
	headers := bearer(seller.Token)
	headers[IdempotencyKeyHeader] = "key-1"
	body := map[string]any{"name": "Stylo", "price": 1.2, "stock": 3}

	first := s.do(t, http.MethodPost, "/api/seller/products", body, headers)
	require.Equal(t, http.StatusCreated, first.Code)
	second := s.do(t, http.MethodPost, "/api/seller/products", body, headers)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, decode[map[string]any](t, first)["id"], decode[map[string]any](t, second)["id"])

	body["price"] = 9.9
	conflict := s.do(t, http.MethodPost, "/api/seller/products", body, headers)
	assert.Equal(t, http.StatusConflict, conflict.Code)
}

func TestCatalog_ImageUploadWithoutStorage(t *testing.T) {
	s := newTestServer(t)
	seller := s.register(t, "seller", "seller@example.com")
	id := s.createProduct(t, seller.Token, map[string]any{"name": "Sac", "price": 20, "stock": 1})

	rec := s.do(t, http.MethodPost, "/api/seller/products/"+id+"/images", map[string]string{"filename": "sac.png"}, bearer(seller.Token))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOrders_CheckoutListAndCancel(t *testing.T) {
	s := newTestServer(t)
	seller := s.register(t, "seller", "seller@example.com")
	client := s.register(t, "client", "client@example.com")
	productID := s.createProduct(t, seller.Token, map[string]any{"name": "Cahier", "price": 4, "stock": 5})

	checkout := map[string]any{
		"items":           []map[string]any{{"productId": productID, "quantity": 2}},
		"shippingAddress": map[string]string{"fullName": "Client", "city": "Dakar"},
		"total":           8,
		"paymentMethod":   "card",
	}
	rec := s.do(t, http.MethodPost, "/api/orders", checkout, bearer(client.Token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Orders  []struct {
			ID            string  `json:"id"`
			PaymentStatus string  `json:"paymentStatus"`
			Total         float64 `json:"total"`
		} `json:"orders"`
	}](t, rec)
	require.True(t, created.Success)
	assert.Equal(t, "1 order(s) created", created.Message)
	require.Len(t, created.Orders, 1)
	assert.Equal(t, "PAID", created.Orders[0].PaymentStatus)
	assert.InDelta(t, 8.0, created.Orders[0].Total, 0.001)

	rec = s.do(t, http.MethodGet, "/api/products/"+productID, nil, nil)
	assert.EqualValues(t, 3, decode[map[string]any](t, rec)["stock"])

	rec = s.do(t, http.MethodGet, "/api/orders?status=EN_ATTENTE", nil, bearer(client.Token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/api/orders?status=bogus", nil, bearer(client.Token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/seller/orders", nil, bearer(seller.Token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = s.do(t, http.MethodPatch, "/api/orders", map[string]string{}, bearer(client.Token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/orders", map[string]string{"orderId": created.Orders[0].ID}, bearer(client.Token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "order cancelled", decode[map[string]any](t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/api/notifications", nil, bearer(client.Token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]map[string]any](t, rec))
}

func TestOrders_InsufficientStockCarriesQuantities(t *testing.T) {
	s := newTestServer(t)
	seller := s.register(t, "seller", "seller@example.com")
	productID := s.createProduct(t, seller.Token, map[string]any{"name": "Règle", "price": 2, "stock": 1})

	rec := s.do(t, http.MethodPost, "/api/orders", map[string]any{
		"items":           []map[string]any{{"productId": productID, "quantity": 3}},
		"shippingAddress": map[string]string{"fullName": "Guest"},
		"total":           6,
		"customerInfo":    map[string]string{"email": "guest@example.com"},
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[problemBody](t, rec)
	assert.EqualValues(t, 1, problem.Extensions["available"])
	assert.EqualValues(t, 3, problem.Extensions["requested"])
	assert.Equal(t, "/api/orders", problem.Instance)
	assert.NotEmpty(t, problem.Error)
}

func TestOrders_AcceptsFreeFormPaymentMethods(t *testing.T) {
	s := newTestServer(t)
	seller := s.register(t, "seller", "seller@example.com")
	productID := s.createProduct(t, seller.Token, map[string]any{"name": "Crayon", "price": 1, "stock": 5})

	rec := s.do(t, http.MethodPost, "/api/orders", map[string]any{
		"items":           []map[string]any{{"id": productID, "quantity": 1}},
		"shippingAddress": map[string]string{"fullName": "Guest"},
		"total":           1,
		"paymentMethod":   "Hand Payment",
		"customerInfo":    map[string]string{"email": "not-an-email"},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[struct {
		Orders []struct {
			PaymentStatus string `json:"paymentStatus"`
		} `json:"orders"`
	}](t, rec)
	require.Len(t, created.Orders, 1)
	assert.Equal(t, "PENDING", created.Orders[0].PaymentStatus)

	rec = s.do(t, http.MethodPost, "/api/orders", map[string]any{
		"items":           []map[string]any{{"productId": productID, "quantity": 1}},
		"shippingAddress": map[string]string{"fullName": "Guest"},
		"total":           1,
		"paymentMethod":   strings.Repeat("x", 65),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCart_AnonymousGetReturnsEmptyCart(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/cart", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, decode[map[string]any](t, rec)["items"])
}

func TestCart_GuestTokenFlow(t *testing.T) {
	s := newTestServer(t)
	seller := s.register(t, "seller", "seller@example.com")
	productID := s.createProduct(t, seller.Token, map[string]any{"name": "Gomme", "price": 1, "stock": 2})
	guest := map[string]string{CartTokenHeader: "guest-123"}

	rec := s.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": productID}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": productID, "quantity": 2}, guest)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": productID, "quantity": 1}, guest)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, 2, decode[problemBody](t, rec).Extensions["available"])

	rec = s.do(t, http.MethodGet, "/api/cart", nil, guest)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		ItemCount int     `json:"itemCount"`
		Total     float64 `json:"total"`
	}](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.ItemCount)
	assert.InDelta(t, 2.0, cart.Total, 0.001)

	rec = s.do(t, http.MethodPatch, "/api/cart/items/"+cart.Items[0].ID, map[string]any{"quantity": 0}, guest)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode[map[string]any](t, rec)["itemCount"])
}

func TestSchoolLists_ManagerPublishesAndCartImports(t *testing.T) {
	s := newTestServer(t)
	manager := bearer(managerToken)

	rec := s.do(t, http.MethodPost, "/api/manager/listes-scolaires", map[string]any{
		"titre":   "CP 2026",
		"besoins": []map[string]any{{"nomProduit": "Cahier 96 pages", "quantite": 4}},
	}, manager)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	listID := decode[map[string]any](t, rec)["id"].(string)

	rec = s.do(t, http.MethodGet, "/api/listes-scolaires/"+listID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/manager/listes-scolaires/"+listID+"/publish", nil, manager)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/listes-scolaires/published", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = s.do(t, http.MethodPost, "/api/cart/school-lists/"+listID, nil, map[string]string{CartTokenHeader: "family"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 4, decode[map[string]any](t, rec)["itemCount"])

	seller := s.register(t, "seller", "seller@example.com")
	rec = s.do(t, http.MethodGet, "/api/manager/listes-scolaires", nil, bearer(seller.Token))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSupport_TicketsForGuestsAndUsers(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/tickets", map[string]any{"subject": "Livraison", "description": "Colis en retard"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/tickets", map[string]any{
		"subject": "Livraison", "description": "Colis en retard", "email": "guest@example.com", "category": "SHIPPING",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	client := s.register(t, "client", "client@example.com")
	rec = s.do(t, http.MethodPost, "/api/tickets", map[string]any{"subject": "Paiement", "description": "Double débit", "priority": "HIGH"}, bearer(client.Token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/tickets", nil, bearer(client.Token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = s.do(t, http.MethodPost, "/api/tickets", map[string]any{"subject": "x", "description": "y", "category": "WEATHER"}, bearer(client.Token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats_ManagerSeesRevenue(t *testing.T) {
	s := newTestServer(t)
	seller := s.register(t, "seller", "seller@example.com")
	productID := s.createProduct(t, seller.Token, map[string]any{"name": "Trousse", "price": 5, "stock": 5})

	rec := s.do(t, http.MethodPost, "/api/orders", map[string]any{
		"items":           []map[string]any{{"productId": productID, "quantity": 1}},
		"shippingAddress": map[string]string{"fullName": "Guest"},
		"total":           5,
		"paymentMethod":   "card",
		"customerInfo":    map[string]string{"email": "guest@example.com"},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/stats", nil, bearer(managerToken))
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[Statistics](t, rec)
	assert.InDelta(t, 5.0, stats.TotalRevenue, 0.001)
	assert.EqualValues(t, 1, stats.TotalOrders)
}
