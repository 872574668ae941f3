package watchlist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "watchlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	added, err := store.Add(ctx, "NSE:RELIANCE")
	require.NoError(t, err)
	assert.True(t, added)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "NSE:RELIANCE", entries[0].Symbol)
	assert.False(t, entries[0].AddedAt.IsZero())
}

func TestAddIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, "AAPL")
	require.NoError(t, err)
	second, err := store.Add(ctx, "AAPL")
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second, "re-adding must not report a change")

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddNormalizesSymbol(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, "  nse:tcs ")
	require.NoError(t, err)

	ok, err := store.Contains(ctx, "NSE:TCS")
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "NSE:TCS", entries[0].Symbol)
}

func TestAddRejectsInvalidSymbol(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add(context.Background(), "LSE:VOD")
	assert.Error(t, err)

	_, err = store.Add(context.Background(), "")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, "NSE:INFY")
	require.NoError(t, err)

	removed, err := store.Remove(ctx, "NSE:INFY")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Remove(ctx, "NSE:INFY")
	require.NoError(t, err)
	assert.False(t, removed, "removing an untracked symbol must not report a change")

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestContains(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ok, err := store.Contains(ctx, "TSLA")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Add(ctx, "TSLA")
	require.NoError(t, err)

	ok, err = store.Contains(ctx, "tsla")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSymbols(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, sym := range []string{"AAPL", "MSFT", "NSE:TCS"} {
		_, err := store.Add(ctx, sym)
		require.NoError(t, err)
	}

	syms, err := store.Symbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "NSE:TCS"}, syms)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watchlist.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Add(ctx, "NSE:SBIN")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	ok, err := reopened.Contains(ctx, "NSE:SBIN")
	require.NoError(t, err)
	assert.True(t, ok)
}
