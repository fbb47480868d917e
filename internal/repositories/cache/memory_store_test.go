package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "txns:list:user-1", `["a"]`, time.Minute))

	value, hit, err := store.Get(ctx, "txns:list:user-1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, `["a"]`, value)
}

func TestMemoryStore_MissOnUnknownKey(t *testing.T) {
	store := NewMemoryStore()

	_, hit, err := store.Get(context.Background(), "txns:list:user-missing")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryStore_ExpiredEntryIsDropped(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	current := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "txn:item:user-1:txn-1", "{}", time.Minute))

	current = current.Add(59 * time.Second)
	_, hit, err := store.Get(ctx, "txn:item:user-1:txn-1")
	require.NoError(t, err)
	assert.True(t, hit)

	current = current.Add(2 * time.Second)
	_, hit, err = store.Get(ctx, "txn:item:user-1:txn-1")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryStore_DelRemovesAllKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, store.Set(ctx, "b", "2", time.Minute))

	require.NoError(t, store.Del(ctx, "a", "b", "never-existed"))

	_, hit, _ := store.Get(ctx, "a")
	assert.False(t, hit)
	_, hit, _ = store.Get(ctx, "b")
	assert.False(t, hit)
}
