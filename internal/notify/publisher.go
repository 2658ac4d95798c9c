package notify

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/messaging-service/internal/events"
)

// Publisher pushes notification events to subscribers outside the process.
type Publisher interface {
	Publish(ctx context.Context, userID string, event events.Event) error
}

// RedisPublisher publishes events on a per-user Redis channel.
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// NewRedisPublisher builds a publisher. Channels are named "<prefix>:<user id>".
func NewRedisPublisher(client *redis.Client, prefix string) *RedisPublisher {
	if prefix == "" {
		prefix = "notifications"
	}
	return &RedisPublisher{client: client, prefix: prefix}
}

// Channel returns the channel carrying notifications for userID.
func (p *RedisPublisher) Channel(userID string) string {
	return p.prefix + ":" + userID
}

// Publish encodes event as JSON and publishes it to the user's channel.
func (p *RedisPublisher) Publish(ctx context.Context, userID string, event events.Event) error {
	if p == nil || p.client == nil {
		return errors.New("redis publisher not configured")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.Channel(userID), payload).Err()
}
