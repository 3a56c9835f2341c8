package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpires(t *testing.T) {
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	val, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)

	now = now.Add(time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheCopiesValue(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, 0))
	buf[0] = 'z'

	val, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(val))
}

func TestMemoryCacheSweepsExpiredOnSet(t *testing.T) {
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	for _, key := range []string{"a:1:x", "a:2:x", "b:1:x"} {
		require.NoError(t, c.Set(ctx, key, []byte("v"), time.Minute))
	}
	require.NoError(t, c.Set(ctx, "keep", []byte("v"), time.Hour))
	assert.Equal(t, 4, c.Len())

	now = now.Add(2 * time.Minute)
	require.NoError(t, c.Set(ctx, "c:1:x", []byte("v"), time.Minute))
	assert.Equal(t, 2, c.Len())
}

func TestMemoryCacheDeletePrefix(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	for _, key := range []string{"a:1:x", "a:2:o", "ab:1:x"} {
		require.NoError(t, c.Set(ctx, key, []byte("v"), 0))
	}

	require.NoError(t, c.DeletePrefix(ctx, "a:"))
	assert.Equal(t, 1, c.Len())
	_, ok, err := c.Get(ctx, "ab:1:x")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisCache(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	client, err := DialRedis(ctx, srv.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisCache(client)

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "board:1:x", []byte(`[]`), time.Minute))
	val, ok, err := c.Get(ctx, "board:1:x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(val))
	assert.True(t, srv.Exists(keyPrefix+"board:1:x"))

	srv.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "board:1:x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheDeletePrefix(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	client, err := DialRedis(ctx, srv.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisCache(client)
	for i := 0; i < 150; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("a:%d:x", i), []byte(`[]`), time.Minute))
	}
	require.NoError(t, c.Set(ctx, "b:1:x", []byte(`[]`), time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, "a:"))
	assert.False(t, srv.Exists(keyPrefix+"a:0:x"))
	assert.False(t, srv.Exists(keyPrefix+"a:149:x"))
	assert.True(t, srv.Exists(keyPrefix+"b:1:x"))
	assert.Len(t, srv.Keys(), 1)
}

func TestDialRedisFails(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := DialRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
