package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docforge/internal/index"
	"docforge/internal/pysrc"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func entry(name, file, source, doc string) Entry {
	return Entry{
		Symbol: index.Symbol{
			Name:             name,
			Kind:             pysrc.KindFunction,
			FilePath:         file,
			NormalizedSource: source,
		},
		DocString: doc,
	}
}

func TestStore_SaveAndList(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save([]Entry{
		entry("alpha", "a.py", "def alpha():\n    pass", "\"\"\"\nFirst.\n\"\"\""),
		entry("beta", "b.py", "def beta():\n    pass", "\"\"\"\nSecond.\n\"\"\""),
	}))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].Symbol.Name)
	assert.Equal(t, pysrc.KindFunction, entries[0].Symbol.Kind)
	assert.Equal(t, "\"\"\"\nFirst.\n\"\"\"", entries[0].DocString)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_SaveUpserts(t *testing.T) {
	store := newTestStore(t)

	e := entry("alpha", "a.py", "def alpha():\n    pass", "old")
	require.NoError(t, store.Save([]Entry{e}))

	e.DocString = "new"
	require.NoError(t, store.Save([]Entry{e}))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].DocString)
}

func TestStore_SameNameDifferentFiles(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save([]Entry{
		entry("shared", "a.py", "def shared():\n    return 'a'", "doc a"),
		entry("shared", "b.py", "def shared():\n    return 'b'", "doc b"),
	}))

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)

	keep := entry("keep", "a.py", "def keep():\n    pass", "kept")
	drop := entry("drop", "b.py", "def drop():\n    pass", "dropped")
	require.NoError(t, store.Save([]Entry{keep, drop}))

	require.NoError(t, store.Delete(drop))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", entries[0].Symbol.Name)
}

func TestNewStore_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "docs.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
