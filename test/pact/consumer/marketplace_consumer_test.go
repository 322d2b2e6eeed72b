//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-marketplace/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	ID         string  `json:"id"`
	StoreID    string  `json:"storeId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	FinalPrice float64 `json:"finalPrice"`
	Stock      int     `json:"stock"`
	IsActive   bool    `json:"isActive"`
}

type authPayload struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

type ticketPayload struct {
	Success bool `json:"success"`
	Ticket  struct {
		ID      string `json:"id"`
		Subject string `json:"subject"`
		Status  string `json:"status"`
	} `json:"ticket"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestMarketplaceWebContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	name, price, stock := pacttest.ExampleProduct()
	uuidPattern := "[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}"
	exampleUUID := "3f2b8c1e-5a4d-4c2b-9e7f-1a2b3c4d5e6f"
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.Regex("application/problem+json", "application\\/problem\\+json.*")

	pact.AddInteraction().
		Given(pacttest.StateCatalogBaseline).
		UponReceiving("a request for the storefront catalog").
		WithRequest("GET", "/api/products").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(matchers.Map{
				"id":         matchers.Term(exampleUUID, uuidPattern),
				"storeId":    matchers.Term(exampleUUID, uuidPattern),
				"name":       matchers.Like(name),
				"price":      matchers.Like(price),
				"finalPrice": matchers.Like(price),
				"stock":      matchers.Like(stock),
				"isActive":   matchers.Like(true),
			}, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogEmpty).
		UponReceiving("a request for a missing product").
		WithRequest("GET", "/api/products/"+pacttest.MissingProductID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"title":  matchers.Like("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateNoAccounts).
		UponReceiving("a client signup").
		WithRequest("POST", "/api/auth/register/client", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]any{
				"name":     pacttest.ClientName,
				"email":    pacttest.ClientEmail,
				"password": pacttest.ClientPassword,
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"token":   matchers.Like("header.payload.signature"),
				"user": matchers.Map{
					"id":    matchers.Term(exampleUUID, uuidPattern),
					"email": matchers.Like(pacttest.ClientEmail),
					"role":  matchers.Like("CUSTOMER"),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateSupportOpen).
		UponReceiving("a guest support ticket").
		WithRequest("POST", "/api/tickets", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleTicketPayload())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"ticket": matchers.Map{
					"id":      matchers.Term(exampleUUID, uuidPattern),
					"subject": matchers.Like("Commande non reçue"),
					"status":  matchers.Like("OPEN"),
				},
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newMarketplaceClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var products []productPayload
		if err := client.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		if len(products) == 0 || products[0].ID == "" {
			return fmt.Errorf("expected at least one product, got %+v", products)
		}

		err := client.do(ctx, http.MethodGet, "/api/products/"+pacttest.MissingProductID, nil, &productPayload{})
		if err == nil {
			return fmt.Errorf("expected 404 for product %s", pacttest.MissingProductID)
		} else if apiErr, ok := err.(apiError); !ok || apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %v", err)
		}

		var auth authPayload
		signup := map[string]any{"name": pacttest.ClientName, "email": pacttest.ClientEmail, "password": pacttest.ClientPassword}
		if err := client.do(ctx, http.MethodPost, "/api/auth/register/client", signup, &auth); err != nil {
			return fmt.Errorf("register client: %w", err)
		}
		if auth.Token == "" || auth.User.ID == "" {
			return fmt.Errorf("expected token and user id, got %+v", auth)
		}

		var ticket ticketPayload
		if err := client.do(ctx, http.MethodPost, "/api/tickets", pacttest.ExampleTicketPayload(), &ticket); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}
		if !ticket.Success || ticket.Ticket.ID == "" {
			return fmt.Errorf("expected created ticket, got %+v", ticket)
		}
		return nil
	})
	require.NoError(t, err)
}

type marketplaceClient struct {
	baseURL    string
	httpClient *http.Client
}

func newMarketplaceClient(config pactconsumer.MockServerConfig) *marketplaceClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &marketplaceClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *marketplaceClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
