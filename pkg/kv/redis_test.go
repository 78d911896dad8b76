package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = r.Close() })
	return mr, r
}

func TestRedisContract(t *testing.T) {
	_, r := newMiniRedis(t)
	testBackendContract(t, r)
}

func TestRedisStoresPlainStringWithoutTTL(t *testing.T) {
	mr, r := newMiniRedis(t)

	require.NoError(t, r.Set(context.Background(), "habits-data", "[]"))
	got, err := mr.Get("habits-data")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
	assert.Zero(t, mr.TTL("habits-data"))
}

func TestRedisUnavailable(t *testing.T) {
	mr, r := newMiniRedis(t)
	mr.Close()

	ctx := context.Background()
	_, _, err := r.Get(ctx, "habits-data")
	assert.Error(t, err)
	assert.Error(t, r.Set(ctx, "habits-data", "[]"))
	assert.Error(t, r.Ping(ctx))
}
