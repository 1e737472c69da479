package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewManagerDefaultsPath(t *testing.T) {
	m := NewManager("", zaptest.NewLogger(t))
	assert.Equal(t, DefaultDatabaseFile, m.Path())
}

func TestInitCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facturo.db")
	m := NewManager(path, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = m.Close() })

	require.NoError(t, m.Init(context.Background()))

	conn, err := m.DB()
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Raw(
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN
		 ('customers', 'products', 'invoices', 'invoice_items', 'companies')`,
	).Scan(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facturo.db")
	m := NewManager(path, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = m.Close() })

	require.NoError(t, m.Init(context.Background()))
	require.NoError(t, m.Init(context.Background()))
}

func TestSetDatabasePathRepoints(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(filepath.Join(dir, "first.db"), zaptest.NewLogger(t))
	t.Cleanup(func() { _ = m.Close() })
	ctx := context.Background()

	require.NoError(t, m.Init(ctx))

	second := filepath.Join(dir, "second.db")
	require.NoError(t, m.SetDatabasePath(second))
	assert.Equal(t, second, m.Path())

	require.NoError(t, m.Init(ctx))

	conn, err := m.DB()
	require.NoError(t, err)
	var count int64
	require.NoError(t, conn.Raw(
		`SELECT count(*) FROM customers`,
	).Scan(&count).Error)
	assert.Zero(t, count)
}

func TestDBWithoutPath(t *testing.T) {
	m := NewManager("x.db", zaptest.NewLogger(t))
	require.NoError(t, m.SetDatabasePath(""))

	_, err := m.DB()
	require.ErrorIs(t, err, ErrNotInitialized)
}
