package fixtures

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	customerrepo "github.com/smallbiznis/facturo/internal/customer/repository"
	customerservice "github.com/smallbiznis/facturo/internal/customer/service"
	invoicerepo "github.com/smallbiznis/facturo/internal/invoice/repository"
	invoiceservice "github.com/smallbiznis/facturo/internal/invoice/service"
	productrepo "github.com/smallbiznis/facturo/internal/product/repository"
	productservice "github.com/smallbiznis/facturo/internal/product/service"
	"github.com/smallbiznis/facturo/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newLoader(t *testing.T) *Loader {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	manager := db.NewManager(dsn, zaptest.NewLogger(t))
	require.NoError(t, manager.Init(context.Background()))
	t.Cleanup(func() { _ = manager.Close() })

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zaptest.NewLogger(t)

	return New(Params{
		Log: log,
		Customers: customerservice.New(customerservice.Params{
			DB: manager, Log: log, GenID: node, Repo: customerrepo.Provide(),
		}),
		Products: productservice.New(productservice.Params{
			DB: manager, Log: log, GenID: node, Repo: productrepo.Provide(),
		}),
		Invoices: invoiceservice.New(invoiceservice.Params{
			DB: manager, Log: log, GenID: node, Repo: invoicerepo.Provide(),
		}),
	})
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCustomersBestEffort(t *testing.T) {
	loader := newLoader(t)
	path := writeFixture(t, "customers.json", `[
		{"name": "Alice Martin", "address": "123 Main St", "email": "alice@example.com"},
		{"name": "ab", "address": "too short name"},
		{"name": "Bob Stone", "address": "45 Rue Haute"}
	]`)

	summary, err := loader.LoadCustomers(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 1, summary.Failed)

	all, err := loader.customers.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLoadCustomersMissingFile(t *testing.T) {
	loader := newLoader(t)

	_, err := loader.LoadCustomers(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadCustomersBadJSON(t *testing.T) {
	loader := newLoader(t)
	path := writeFixture(t, "customers.json", `{not json`)

	_, err := loader.LoadCustomers(context.Background(), path)
	require.Error(t, err)
}

func TestLoadProductsCreatesThenUpdates(t *testing.T) {
	loader := newLoader(t)
	ctx := context.Background()

	first := writeFixture(t, "products.json", `[
		{"reference": "SKU-001", "name": "Widget", "price": 9.99, "stock": 10}
	]`)
	summary, err := loader.LoadProducts(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)

	// same reference again updates in place instead of failing
	second := writeFixture(t, "products.json", `[
		{"reference": "SKU-001", "price": 12.50}
	]`)
	summary, err = loader.LoadProducts(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Zero(t, summary.Failed)

	got, err := loader.products.GetByReference(ctx, "SKU-001")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Price)
	assert.Equal(t, 12.50, *got.Price)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Widget", *got.Name)
}

func TestLoadInvoices(t *testing.T) {
	loader := newLoader(t)
	ctx := context.Background()

	path := writeFixture(t, "invoices.json", `[
		{
			"reference": "INV-001",
			"date": "2024-01-10",
			"due_date": "2024-02-10",
			"customer": "Alice Martin\n123 Main St\n75001 Paris",
			"subtotal": 100,
			"tax": 20,
			"total": 120,
			"items": [
				{"description": "Widget", "quantity": 2, "unit_price": 25, "total_price": 50},
				{"description": "Gadget", "quantity": 1, "unit_price": 50, "total_price": 50}
			]
		},
		{
			"reference": "INV-BAD",
			"date": "not-a-date",
			"customer": "Bob Stone"
		}
	]`)

	summary, err := loader.LoadInvoices(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Failed)

	found, err := loader.invoices.Search(ctx, "INV-001", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Alice Martin", found[0].CustomerName)
	assert.Equal(t, "123 Main St\n75001 Paris", found[0].CustomerAddress)
	require.NotNil(t, found[0].DueDate)
	assert.Len(t, found[0].Items, 2)
}

func TestSplitCustomerBlock(t *testing.T) {
	name, address := splitCustomerBlock("Alice Martin\n123 Main St\n75001 Paris")
	assert.Equal(t, "Alice Martin", name)
	assert.Equal(t, "123 Main St\n75001 Paris", address)

	name, address = splitCustomerBlock("  Bob Stone  ")
	assert.Equal(t, "Bob Stone", name)
	assert.Empty(t, address)

	name, address = splitCustomerBlock("")
	assert.Empty(t, name)
	assert.Empty(t, address)
}
