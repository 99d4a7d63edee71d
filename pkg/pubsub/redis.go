package pubsub

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPublisher sends events with PUBLISH. The client is owned by the caller.
type RedisPublisher struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisPublisher(client *redis.Client, log *zap.Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		log:    log.With(zap.String("publisher", "redis")),
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, event Event) error {
	body, err := event.Marshal()
	if err != nil {
		return err
	}

	receivers, err := p.client.Publish(ctx, channel, body).Result()
	if err != nil {
		return fmt.Errorf("redis publish %s to %s: %w", event.Name, channel, err)
	}

	p.log.Debug("Event published",
		zap.String("channel", channel),
		zap.String("event", event.Name),
		zap.Int64("receivers", receivers),
	)
	return nil
}

func (p *RedisPublisher) Close() error { return nil }
