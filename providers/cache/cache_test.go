package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		cache := NewMemoryCache()
		defer cache.Stop()

		cache.Set(ctx, "weather:51.5000,-0.1200", []byte(`{"temp":15}`), time.Minute)

		data, found := cache.Get(ctx, "weather:51.5000,-0.1200")
		assert.True(t, found)
		assert.Equal(t, []byte(`{"temp":15}`), data)
	})

	t.Run("MissingKey", func(t *testing.T) {
		cache := NewMemoryCache()
		defer cache.Stop()

		_, found := cache.Get(ctx, "absent")
		assert.False(t, found)
	})

	t.Run("ExpiredEntry", func(t *testing.T) {
		cache := NewMemoryCache()
		defer cache.Stop()

		cache.Set(ctx, "short", []byte("value"), 10*time.Millisecond)
		time.Sleep(30 * time.Millisecond)

		_, found := cache.Get(ctx, "short")
		assert.False(t, found)
	})

	t.Run("NilValueIgnored", func(t *testing.T) {
		cache := NewMemoryCache()
		defer cache.Stop()

		cache.Set(ctx, "nil", nil, time.Minute)

		_, found := cache.Get(ctx, "nil")
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		cache := NewMemoryCache()
		defer cache.Stop()

		cache.Set(ctx, "key", []byte("value"), time.Minute)
		cache.Delete(ctx, "key")

		_, found := cache.Get(ctx, "key")
		assert.False(t, found)
	})

	t.Run("Clear", func(t *testing.T) {
		cache := NewMemoryCache()
		defer cache.Stop()

		cache.Set(ctx, "one", []byte("1"), time.Minute)
		cache.Set(ctx, "two", []byte("2"), time.Minute)
		cache.Clear(ctx)

		_, found := cache.Get(ctx, "one")
		assert.False(t, found)
		_, found = cache.Get(ctx, "two")
		assert.False(t, found)
	})
}

func setupRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)

	cache, err := NewRedisCache(&RedisCacheConfig{
		Addr:         server.Addr(),
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, cache.Close())
	})

	return cache, server
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		cache, _ := setupRedisCache(t)

		cache.Set(ctx, "forecast:51.5000,-0.1200", []byte(`[{"temp_c":10}]`), time.Minute)

		data, found := cache.Get(ctx, "forecast:51.5000,-0.1200")
		assert.True(t, found)
		assert.Equal(t, []byte(`[{"temp_c":10}]`), data)
	})

	t.Run("MissingKey", func(t *testing.T) {
		cache, _ := setupRedisCache(t)

		_, found := cache.Get(ctx, "absent")
		assert.False(t, found)
	})

	t.Run("TTLExpiry", func(t *testing.T) {
		cache, server := setupRedisCache(t)

		cache.Set(ctx, "short", []byte("value"), time.Minute)
		server.FastForward(2 * time.Minute)

		_, found := cache.Get(ctx, "short")
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		cache, _ := setupRedisCache(t)

		cache.Set(ctx, "key", []byte("value"), time.Minute)
		cache.Delete(ctx, "key")

		_, found := cache.Get(ctx, "key")
		assert.False(t, found)
	})

	t.Run("Clear", func(t *testing.T) {
		cache, _ := setupRedisCache(t)

		cache.Set(ctx, "one", []byte("1"), time.Minute)
		cache.Set(ctx, "two", []byte("2"), time.Minute)
		cache.Clear(ctx)

		_, found := cache.Get(ctx, "one")
		assert.False(t, found)
	})

	t.Run("ConnectionFailure", func(t *testing.T) {
		_, err := NewRedisCache(&RedisCacheConfig{
			Addr:        "localhost:1",
			DialTimeout: 100 * time.Millisecond,
		})
		assert.Error(t, err)
	})
}
