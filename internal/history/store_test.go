package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/markwatch/markwatch/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTouchAndListOrdering(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().Add(-time.Hour)

	require.NoError(t, store.Touch(models.RecentDocument{Path: "/docs/a.md", Title: "A", OpenedAt: base}))
	require.NoError(t, store.Touch(models.RecentDocument{Path: "/docs/b.md", Title: "B", OpenedAt: base.Add(time.Minute)}))
	require.NoError(t, store.Touch(models.RecentDocument{Path: "/docs/c.md", Title: "C", OpenedAt: base.Add(2 * time.Minute)}))

	entries, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "/docs/c.md", entries[0].Path)
	assert.Equal(t, "/docs/b.md", entries[1].Path)
	assert.Equal(t, "/docs/a.md", entries[2].Path)
}

func TestListHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().Add(-time.Hour)

	require.NoError(t, store.Touch(models.RecentDocument{Path: "/docs/a.md", OpenedAt: base}))
	require.NoError(t, store.Touch(models.RecentDocument{Path: "/docs/b.md", OpenedAt: base.Add(time.Minute)}))

	entries, err := store.List(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/docs/b.md", entries[0].Path)
}

func TestTouchReplacesExistingEntry(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().Add(-time.Hour)

	require.NoError(t, store.Touch(models.RecentDocument{Path: "/docs/a.md", WordCount: 10, OpenedAt: base}))
	require.NoError(t, store.Touch(models.RecentDocument{Path: "/docs/a.md", WordCount: 25, OpenedAt: base.Add(time.Minute)}))

	entries, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 25, entries[0].WordCount)
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Touch(models.RecentDocument{Path: "/docs/a.md"}))
	require.NoError(t, store.Remove("/docs/a.md"))

	entries, err := store.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
