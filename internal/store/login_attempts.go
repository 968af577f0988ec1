package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptsKeyPrefix = "repa:login:attempts:"

// RedisLoginAttemptCounter is a fixed-window counter per lower-cased e-mail.
// The window starts with the first attempt and the key expires with it.
type RedisLoginAttemptCounter struct {
	client *redis.Client
	window time.Duration
}

// NewRedisLoginAttemptCounter creates a counter with the given window.
func NewRedisLoginAttemptCounter(client *redis.Client, window time.Duration) *RedisLoginAttemptCounter {
	return &RedisLoginAttemptCounter{client: client, window: window}
}

// Register implements [LoginAttemptCounter].
func (c *RedisLoginAttemptCounter) Register(ctx context.Context, email string) (int64, error) {
	key := c.key(email)

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("login attempts: %w", err)
	}
	if count == 1 {
		if err = c.client.Expire(ctx, key, c.window).Err(); err != nil {
			return count, fmt.Errorf("login attempts expire: %w", err)
		}
	}

	return count, nil
}

// Reset implements [LoginAttemptCounter].
func (c *RedisLoginAttemptCounter) Reset(ctx context.Context, email string) error {
	if err := c.client.Del(ctx, c.key(email)).Err(); err != nil {
		return fmt.Errorf("login attempts reset: %w", err)
	}
	return nil
}

func (c *RedisLoginAttemptCounter) key(email string) string {
	return loginAttemptsKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// NopLoginAttemptCounter never counts anything. It is used when Redis is not
// configured.
type NopLoginAttemptCounter struct{}

func (NopLoginAttemptCounter) Register(context.Context, string) (int64, error) { return 0, nil }

func (NopLoginAttemptCounter) Reset(context.Context, string) error { return nil }
