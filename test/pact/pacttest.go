//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "marketplace-api"
	ConsumerName = "marketplace-web"

	StateCatalogBaseline = "a seller has an active product on sale"
	StateCatalogEmpty    = "the catalog is empty"
	StateNoAccounts      = "no account exists for the signup email"
	StateSupportOpen     = "support accepts guest tickets"
)

const (
	MissingProductID = "00000000-0000-4000-8000-000000000404"

	SellerEmail    = "pact.seller@example.com"
	SellerPassword = "pact-pass"
	SellerStore    = "Papeterie Pact"

	ClientName     = "Pact Client"
	ClientEmail    = "pact.client@example.com"
	ClientPassword = "pact-pass"
)

const (
	exampleProductName  = "Cahier 96 pages"
	exampleProductPrice = 12.5
	exampleProductStock = 40
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProduct is the product seeded for the catalog baseline state.
func ExampleProduct() (name string, price float64, stock int) {
	return exampleProductName, exampleProductPrice, exampleProductStock
}

// ExampleTicketPayload is a guest support request.
func ExampleTicketPayload() map[string]any {
	return map[string]any{
		"name":        "Pact Guest",
		"email":       "pact.guest@example.com",
		"subject":     "Commande non reçue",
		"description": "Ma commande n'est pas arrivée.",
		"category":    "order",
		"priority":    "high",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
