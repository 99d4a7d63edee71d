package pubsub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// defaultDialTimeout bounds connecting when the caller has no deadline.
const defaultDialTimeout = 5 * time.Second

// AMQPPublisher maps each channel to a durable fanout exchange of the same
// name; the event name is used as routing key.
type AMQPPublisher struct {
	url string
	log *zap.Logger

	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	declared map[string]bool
}

func NewAMQPPublisher(url string, log *zap.Logger) (*AMQPPublisher, error) {
	if url == "" {
		return nil, errors.New("AMQP_URL is empty")
	}

	p := &AMQPPublisher{
		url:      url,
		log:      log.With(zap.String("publisher", "amqp")),
		declared: make(map[string]bool),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(context.Background()); err != nil {
		return nil, err
	}
	return p, nil
}

// dialTimeout is the time left before ctx expires, capped at defaultDialTimeout.
func dialTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return defaultDialTimeout, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return min(left, defaultDialTimeout), nil
}

func (p *AMQPPublisher) connectLocked(ctx context.Context) error {
	timeout, err := dialTimeout(ctx)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	p.conn = conn
	p.ch = ch
	p.declared = make(map[string]bool)
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, channel string, event Event) error {
	body, err := event.Marshal()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// reconnect once after a broker restart
	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		p.closeLocked()
		if err := p.connectLocked(ctx); err != nil {
			return err
		}
	}

	if !p.declared[channel] {
		if err := p.ch.ExchangeDeclare(
			channel,  // name
			"fanout", // kind
			true,     // durable
			false,    // autoDelete
			false,    // internal
			false,    // noWait
			nil,      // args
		); err != nil {
			return fmt.Errorf("amqp declare exchange %s: %w", channel, err)
		}
		p.declared[channel] = true
	}

	if err := p.ch.PublishWithContext(ctx,
		channel,    // exchange
		event.Name, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         event.Name,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("amqp publish %s to %s: %w", event.Name, channel, err)
	}

	p.log.Debug("Event published", zap.String("channel", channel), zap.String("event", event.Name))
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *AMQPPublisher) closeLocked() error {
	var errs []error
	if p.ch != nil && !p.ch.IsClosed() {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil && !p.conn.IsClosed() {
		errs = append(errs, p.conn.Close())
	}
	p.ch, p.conn = nil, nil
	return errors.Join(errs...)
}
