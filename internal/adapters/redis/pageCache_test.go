package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*PageCacheRedis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPageCacheRedis(client), mr
}

func TestPageCacheRedis_Miss(t *testing.T) {
	cache, _ := newCache(t)

	body, ok, err := cache.Get(context.Background(), "anonymous:/")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, body)
}

func TestPageCacheRedis_ExpiresAfterTTL(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "anonymous:/", []byte("<html>index</html>"), 20*time.Second))
	assert.True(t, mr.Exists(KeyPrefix+"anonymous:/"))

	body, ok, err := cache.Get(ctx, "anonymous:/")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<html>index</html>", string(body))

	mr.FastForward(21 * time.Second)

	_, ok, err = cache.Get(ctx, "anonymous:/")
	require.NoError(t, err)
	assert.False(t, ok)
}
