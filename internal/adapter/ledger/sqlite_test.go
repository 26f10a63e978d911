package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	defer store.Close()

	ids, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.Save(ctx, []string{"200", "100"}))
	ids, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "200"}, ids)

	require.NoError(t, store.Save(ctx, []string{"300"}))
	ids, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"300"}, ids, "save overwrites the whole set")

	require.NoError(t, store.Reset(ctx))
	ids, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "ledger.db")

	first, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, []string{"81234567", "81234568", "81234567"}))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	defer second.Close()

	ids, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"81234567", "81234568"}, ids)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemory("1")

	require.NoError(t, store.Save(ctx, []string{"1", "2"}))
	ids, _ := store.Load(ctx)
	assert.Equal(t, []string{"1", "2"}, ids)
	assert.Equal(t, 1, store.Saves())

	require.NoError(t, store.Reset(ctx))
	ids, _ = store.Load(ctx)
	assert.Empty(t, ids)
}
