package history

import (
	"context"
	"path/filepath"
	"testing"

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

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.Record(ctx, "s1", "create a folder called x", "action", "create_folder", "Folder created")
	store.Record(ctx, "s1", "what is Go?", "knowledge", "", "Knowledge Response")
	store.Record(ctx, "s2", "list files", "action", "list_directory", "Contents")

	entries, err := store.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.Equal(t, "s1", e.SessionID)
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestRecent_RespectsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		store.Record(ctx, "s1", "list files", "action", "list_directory", "ok")
	}

	entries, err := store.Recent(ctx, "s1", 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRecent_EmptySession(t *testing.T) {
	store := openTestStore(t)

	entries, err := store.Recent(context.Background(), "absent", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecord_NilStoreIsSafe(t *testing.T) {
	var store *Store
	store.Record(context.Background(), "s1", "x", "action", "", "")
	assert.NoError(t, store.Close())
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Positive(t, store.Size())
}
