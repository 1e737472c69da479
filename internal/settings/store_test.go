package settings

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yml")
	store, err := NewStore(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	return store, path
}

func TestEmptyStore(t *testing.T) {
	store, _ := newStore(t)

	assert.Empty(t, store.LastDatabase())
	assert.Empty(t, store.RecentFiles())
}

func TestTouchRecordsLastDatabase(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Touch("/data/a.db"))
	assert.Equal(t, "/data/a.db", store.LastDatabase())
	assert.Equal(t, []string{"/data/a.db"}, store.RecentFiles())
}

func TestTouchMovesExistingToFront(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Touch("/data/a.db"))
	require.NoError(t, store.Touch("/data/b.db"))
	require.NoError(t, store.Touch("/data/a.db"))

	assert.Equal(t, []string{"/data/a.db", "/data/b.db"}, store.RecentFiles())
	assert.Equal(t, "/data/a.db", store.LastDatabase())
}

func TestRecentFilesCapped(t *testing.T) {
	store, _ := newStore(t)

	for i := 0; i < MaxRecentFiles+2; i++ {
		require.NoError(t, store.Touch(fmt.Sprintf("/data/%d.db", i)))
	}

	recent := store.RecentFiles()
	require.Len(t, recent, MaxRecentFiles)
	assert.Equal(t, "/data/6.db", recent[0])
	assert.Equal(t, "/data/2.db", recent[MaxRecentFiles-1])
}

func TestRemove(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Touch("/data/a.db"))
	require.NoError(t, store.Touch("/data/b.db"))

	require.NoError(t, store.Remove("/data/b.db"))
	assert.Equal(t, []string{"/data/a.db"}, store.RecentFiles())
	assert.Empty(t, store.LastDatabase())
}

func TestPersistsAcrossStores(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Touch("/data/a.db"))
	require.NoError(t, store.Touch("/data/b.db"))

	reopened, err := NewStore(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "/data/b.db", reopened.LastDatabase())
	assert.Equal(t, []string{"/data/b.db", "/data/a.db"}, reopened.RecentFiles())
}
