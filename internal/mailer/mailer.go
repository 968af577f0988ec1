// Package mailer hands verification links over for out-of-band delivery.
package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/utils"
)

//go:generate mockgen -source=mailer.go -destination=../mock/mailer_mock.go -package=mock

// VerificationQueue is the Redis list consumed by the external mail sender.
const VerificationQueue = "repa:mail:verification"

// Mailer delivers verification links.
type Mailer interface {
	SendVerification(ctx context.Context, email, link string) error
}

// VerificationMessage is the JSON payload pushed to [VerificationQueue].
type VerificationMessage struct {
	Email    string    `json:"email"`
	Link     string    `json:"link"`
	QueuedAt time.Time `json:"queued_at"`
	TraceID  string    `json:"trace_id,omitempty"`
}

// RedisQueueMailer pushes messages onto a Redis list.
type RedisQueueMailer struct {
	client *redis.Client
	queue  string
	now    func() time.Time
}

// NewRedisQueueMailer returns a mailer writing to [VerificationQueue].
func NewRedisQueueMailer(client *redis.Client) *RedisQueueMailer {
	return &RedisQueueMailer{
		client: client,
		queue:  VerificationQueue,
		now:    time.Now,
	}
}

func (m *RedisQueueMailer) SendVerification(ctx context.Context, email, link string) error {
	msg := VerificationMessage{
		Email:    email,
		Link:     link,
		QueuedAt: m.now().UTC(),
	}
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		msg.TraceID = traceID
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode verification message: %w", err)
	}

	if err = m.client.LPush(ctx, m.queue, payload).Err(); err != nil {
		return fmt.Errorf("enqueue verification message: %w", err)
	}
	return nil
}

// LogMailer only logs that a link was produced. The link itself is not
// logged since it embeds a live token.
type LogMailer struct {
	logger *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{logger: log}
}

func (m *LogMailer) SendVerification(ctx context.Context, email, _ string) error {
	m.logger.Info().Str("func", "*LogMailer.SendVerification").Str("email", email).Msg("verification link produced; no mail queue configured")
	return nil
}
