// Package pubsub publishes domain events to named channels for live UI updates.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Event is the envelope delivered to subscribers.
type Event struct {
	Name       string    `json:"event"`
	Data       any       `json:"data"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(name string, data any) Event {
	return Event{Name: name, Data: data, OccurredAt: time.Now().UTC()}
}

func (e Event) Marshal() ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", e.Name, err)
	}
	return body, nil
}

type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
	Close() error
}

const (
	DriverRedis = "redis"
	DriverAMQP  = "amqp"
	DriverLog   = "log"
)

// NewPublisher picks the configured driver. A driver whose backend is
// unavailable falls back to the log publisher.
func NewPublisher(config utils.PubSubConfig, rdb *redis.Client, log *zap.Logger) Publisher {
	switch strings.ToLower(config.Driver) {
	case DriverRedis:
		if rdb != nil {
			return NewRedisPublisher(rdb, log)
		}
		log.Warn("Redis publisher requested without a Redis client, using log publisher")
	case DriverAMQP:
		pub, err := NewAMQPPublisher(config.AMQPURL, log)
		if err == nil {
			return pub
		}
		log.Warn("AMQP publisher unavailable, using log publisher", zap.Error(err))
	case DriverLog, "":
	default:
		log.Warn("Unknown pubsub driver, using log publisher", zap.String("driver", config.Driver))
	}
	return NewLogPublisher(log)
}
