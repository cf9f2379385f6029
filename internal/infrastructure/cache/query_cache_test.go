package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedList struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := cachedList{Items: []string{"a", "b"}, Total: 2}
	require.NoError(t, store.Set(ctx, DealsPageKey(1), original, time.Minute))

	var got cachedList
	found, err := store.Get(ctx, DealsPageKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, original, got)
}

func TestMemoryStoreMissOnUnknownKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var got cachedList
	found, err := store.Get(ctx, CartScope(42), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, DealsPageKey(1), cachedList{Total: 1}, -time.Second))

	var got cachedList
	found, err := store.Get(ctx, DealsPageKey(1), &got)
	require.NoError(t, err)
	assert.False(t, found, "expired entries behave like misses")
}

func TestInvalidateRemovesWholeScope(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// Several pages of the same logical list plus an unrelated scope.
	require.NoError(t, store.Set(ctx, WishlistPageKey(7, 1, 8), cachedList{Total: 9}, time.Minute))
	require.NoError(t, store.Set(ctx, WishlistPageKey(7, 2, 8), cachedList{Total: 9}, time.Minute))
	require.NoError(t, store.Set(ctx, CartScope(7), cachedList{Total: 3}, time.Minute))

	require.NoError(t, store.Invalidate(ctx, WishlistScope(7)))

	var got cachedList
	found, _ := store.Get(ctx, WishlistPageKey(7, 1, 8), &got)
	assert.False(t, found, "page 1 must be stale after invalidation")
	found, _ = store.Get(ctx, WishlistPageKey(7, 2, 8), &got)
	assert.False(t, found, "page 2 must be stale after invalidation")

	found, _ = store.Get(ctx, CartScope(7), &got)
	assert.True(t, found, "other scopes stay cached")
}

func TestInvalidateDoesNotCrossUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, CartScope(1), cachedList{Total: 1}, time.Minute))
	require.NoError(t, store.Set(ctx, CartScope(2), cachedList{Total: 2}, time.Minute))

	require.NoError(t, store.Invalidate(ctx, CartScope(1)))

	var got cachedList
	found, _ := store.Get(ctx, CartScope(2), &got)
	assert.True(t, found)
}

func TestScopeKeys(t *testing.T) {
	assert.Equal(t, "cache:deals:active:page:3", DealsPageKey(3))
	assert.Equal(t, "cache:cart:user:12", CartScope(12))
	assert.Equal(t, "cache:orders:user:12:page:2:20", OrdersPageKey(12, 2, 20))
}
