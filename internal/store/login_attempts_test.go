package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/logger"
)

func setupMiniredis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestLoginAttempts_CountsPerEmailWithinWindow(t *testing.T) {
	client, mr := setupMiniredis(t)
	counter := NewRedisLoginAttemptCounter(client, time.Minute)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := counter.Register(ctx, "Ana@Example.com ")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	other, err := counter.Register(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)

	assert.True(t, mr.Exists(loginAttemptsKeyPrefix+"ana@example.com"))
	assert.Equal(t, time.Minute, mr.TTL(loginAttemptsKeyPrefix+"ana@example.com"))

	mr.FastForward(time.Minute + time.Second)

	n, err := counter.Register(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "window must restart after expiry")
}

func TestLoginAttempts_Reset(t *testing.T) {
	client, mr := setupMiniredis(t)
	counter := NewRedisLoginAttemptCounter(client, time.Minute)
	ctx := context.Background()

	_, err := counter.Register(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, counter.Reset(ctx, "ANA@example.com"))

	assert.False(t, mr.Exists(loginAttemptsKeyPrefix+"ana@example.com"))
}

func TestLoginAttempts_RedisDown(t *testing.T) {
	client, mr := setupMiniredis(t)
	counter := NewRedisLoginAttemptCounter(client, time.Minute)
	mr.Close()

	_, err := counter.Register(context.Background(), "ana@example.com")
	assert.Error(t, err)
}

func TestNewConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewConnectRedis(context.Background(), config.Redis{Address: mr.Addr()}, logger.Nop())
	require.NoError(t, err)
	_ = client.Close()

	mr.Close()
	_, err = NewConnectRedis(context.Background(), config.Redis{Address: mr.Addr()}, logger.Nop())
	assert.Error(t, err)
}
