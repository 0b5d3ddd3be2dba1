package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	assert.NoError(t, cache.Set(ctx, "key", []byte("value"), time.Minute))

	value, err := cache.Get(ctx, "key")

	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}

func TestCache_MissAndExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	_, err := cache.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)

	cache.Set(ctx, "short", []byte("v"), -time.Second)

	_, err = cache.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	cache.Set(ctx, "response:alice:1", []byte("a"), time.Minute)
	cache.Set(ctx, "response:alice:2", []byte("b"), time.Minute)
	cache.Set(ctx, "response:bob:1", []byte("c"), time.Minute)

	assert.NoError(t, cache.DeleteByPrefix(ctx, "response:alice"))

	_, err := cache.Get(ctx, "response:alice:1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = cache.Get(ctx, "response:bob:1")
	assert.NoError(t, err)
}
