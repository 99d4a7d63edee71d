package pubsub

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher only records events; used when no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.With(zap.String("publisher", "log"))}
}

func (p *LogPublisher) Publish(_ context.Context, channel string, event Event) error {
	p.log.Info("Event published",
		zap.String("channel", channel),
		zap.String("event", event.Name),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
