package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/facturo/internal/product/domain"
	"github.com/smallbiznis/facturo/internal/product/repository"
	"github.com/smallbiznis/facturo/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	manager := db.NewManager(dsn, zaptest.NewLogger(t))
	require.NoError(t, manager.Init(context.Background()))
	t.Cleanup(func() { _ = manager.Close() })

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    manager,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func str(s string) *string   { return &s }
func f64(f float64) *float64 { return &f }
func i64(i int64) *int64     { return &i }

func TestCreateAndGet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateProductRequest{
		Reference: "SKU-001",
		Name:      str("Widget"),
		Price:     f64(9.99),
		Stock:     i64(10),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "SKU-001", got.Reference)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Widget", *got.Name)
	require.NotNil(t, got.Price)
	assert.Equal(t, 9.99, *got.Price)
	assert.Nil(t, got.Sold)

	byRef, err := svc.GetByReference(ctx, "SKU-001")
	require.NoError(t, err)
	require.NotNil(t, byRef)
	assert.Equal(t, created.ID, byRef.ID)
}

func TestCreateRejectsBlankReference(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), domain.CreateProductRequest{Reference: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestCreateRejectsDuplicateReference(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProductRequest{Reference: "SKU-001"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateProductRequest{Reference: "SKU-001"})
	require.Error(t, err)
	assert.True(t, db.IsDuplicateKeyErr(err), "expected duplicate key, got %v", err)
}

func TestGetAllSortedByReference(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, ref := range []string{"sku-b", "SKU-A", "SKU-c"} {
		_, err := svc.Create(ctx, domain.CreateProductRequest{Reference: ref})
		require.NoError(t, err)
	}

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "SKU-A", all[0].Reference)
	assert.Equal(t, "sku-b", all[1].Reference)
	assert.Equal(t, "SKU-c", all[2].Reference)
}

func TestSearch(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	widget, err := svc.Create(ctx, domain.CreateProductRequest{
		Reference: "SKU-001",
		Name:      str("Blue Widget"),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProductRequest{
		Reference: "SKU-002",
		Name:      str("Red Gadget"),
	})
	require.NoError(t, err)

	t.Run("by reference substring", func(t *testing.T) {
		found, err := svc.Search(ctx, "sku-00", 0)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("by name substring", func(t *testing.T) {
		found, err := svc.Search(ctx, "widget", 0)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "SKU-001", found[0].Reference)
	})

	t.Run("numeric query matches id", func(t *testing.T) {
		found, err := svc.Search(ctx, fmt.Sprintf("%d", widget.ID), 0)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, widget.ID, found[0].ID)
	})
}

func TestUpdateOverwritesWithZeroValues(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateProductRequest{
		Reference: "SKU-001",
		Name:      str("Widget"),
		Price:     f64(9.99),
		Stock:     i64(10),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, domain.Patch{
		Price: f64(0),
		Sold:  i64(3),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.Price)
	assert.Equal(t, float64(0), *updated.Price)
	require.NotNil(t, updated.Sold)
	assert.Equal(t, int64(3), *updated.Sold)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "Widget", *updated.Name)
	require.NotNil(t, updated.Stock)
	assert.Equal(t, int64(10), *updated.Stock)

	t.Run("unknown id yields nil without error", func(t *testing.T) {
		updated, err := svc.Update(ctx, 42, domain.Patch{Name: str("x")})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateProductRequest{Reference: "SKU-001"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "SKU-001", deleted.Reference)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
