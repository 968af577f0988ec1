package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/utils"
)

func TestRedisQueueMailer_PushesJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	queuedAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	m := NewRedisQueueMailer(client)
	m.now = func() time.Time { return queuedAt }

	require.NoError(t, m.SendVerification(context.Background(), "ana@example.com", "https://repa.example/users/confirm?token=abc"))

	items, err := mr.List(VerificationQueue)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var msg VerificationMessage
	require.NoError(t, json.Unmarshal([]byte(items[0]), &msg))
	assert.Equal(t, "ana@example.com", msg.Email)
	assert.Equal(t, "https://repa.example/users/confirm?token=abc", msg.Link)
	assert.True(t, queuedAt.Equal(msg.QueuedAt))
	assert.Empty(t, msg.TraceID)
}

func TestRedisQueueMailer_CarriesTraceID(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.WithValue(context.Background(), utils.TraceIDCtxKey, "trace-7")
	require.NoError(t, NewRedisQueueMailer(client).SendVerification(ctx, "ana@example.com", "link"))

	items, err := mr.List(VerificationQueue)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, items[0], `"trace_id":"trace-7"`)
}

func TestRedisQueueMailer_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	err := NewRedisQueueMailer(client).SendVerification(context.Background(), "a@b.c", "link")
	assert.Error(t, err)
}

func TestLogMailer_DoesNotLogLink(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}

	err := NewLogMailer(log).SendVerification(context.Background(), "ana@example.com", "https://x/confirm?token=secret-token")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "ana@example.com")
	assert.NotContains(t, buf.String(), "secret-token")
}
