package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedEntry struct {
	Name  string
	Count int
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k1", cachedEntry{Name: "one", Count: 1}, ForEver))

	var got cachedEntry
	require.True(t, c.Get(ctx, "k1", &got))
	assert.Equal(t, cachedEntry{Name: "one", Count: 1}, got)
	assert.True(t, c.Exists(ctx, "k1"))

	require.NoError(t, c.Delete(ctx, "k1"))
	assert.False(t, c.Exists(ctx, "k1"))
	assert.False(t, c.Get(ctx, "k1", &got))
}

func TestMemoryCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "short", cachedEntry{Name: "gone"}, 10*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	var got cachedEntry
	assert.False(t, c.Get(ctx, "short", &got))
}
