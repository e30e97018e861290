package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLimiter(t *testing.T, limit int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	limiter, err := NewRedisLimiter(client, "test:ratelimit", limit, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { limiter.Close() })
	return limiter, server
}

func TestRedisLimiter_AllowsWithinWindow(t *testing.T) {
	limiter, _ := newTestRedisLimiter(t, 2)

	assert.True(t, limiter.Allow("ip-1"))
	assert.True(t, limiter.Allow("ip-1"))
	assert.False(t, limiter.Allow("ip-1"))
	assert.True(t, limiter.Allow("ip-2"))
}

func TestRedisLimiter_KeysExpire(t *testing.T) {
	limiter, server := newTestRedisLimiter(t, 1)

	assert.True(t, limiter.Allow("ip-1"))

	keys := server.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "test:ratelimit:ip-1:")
	assert.Greater(t, server.TTL(keys[0]), time.Duration(0))
}

func TestRedisLimiter_FailsClosed(t *testing.T) {
	limiter, server := newTestRedisLimiter(t, 5)

	server.Close()
	assert.False(t, limiter.Allow("ip-1"))
}

func TestNewRedisLimiter_Validation(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	_, err := NewRedisLimiter(nil, "", 1, time.Second)
	assert.Error(t, err)

	_, err = NewRedisLimiter(client, "", 0, time.Second)
	assert.Error(t, err)

	_, err = NewRedisLimiter(client, "", 1, 0)
	assert.Error(t, err)

	limiter, err := NewRedisLimiter(client, "  :custom:  ", 1, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "custom", limiter.prefix)
}

func TestDialRedisLimiter(t *testing.T) {
	_, err := DialRedisLimiter("", "", "", 1, time.Second)
	assert.Error(t, err)

	server := miniredis.RunT(t)
	limiter, err := DialRedisLimiter(server.Addr(), "", "", 1, time.Minute)
	require.NoError(t, err)
	defer limiter.Close()

	assert.Equal(t, "library:ratelimit", limiter.prefix)
	assert.True(t, limiter.Allow("ip-1"))
	assert.False(t, limiter.Allow("ip-1"))
}
