package usecase

import (
	"context"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/pubsub"

	"go.uber.org/zap"
)

const (
	ChannelMovies = "movies"
	ChannelAdmin  = "admin"

	EventMoviePublished   = "movie.published"
	EventContactSubmitted = "contact.submitted"
)

const defaultPublishTimeout = 2 * time.Second

// Notifier relays domain events for live UI updates. Delivery is best
// effort: failures are logged and never returned to the caller.
type Notifier interface {
	MoviePublished(ctx context.Context, movie *entity.Movie)
	ContactSubmitted(ctx context.Context, contact *entity.Contact)
}

type notifier struct {
	publisher pubsub.Publisher
	timeout   time.Duration
	log       *zap.Logger
}

func NewNotifier(publisher pubsub.Publisher, timeout time.Duration, log *zap.Logger) Notifier {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &notifier{
		publisher: publisher,
		timeout:   timeout,
		log:       log.With(zap.String("component", "notifier")),
	}
}

func (n *notifier) MoviePublished(ctx context.Context, movie *entity.Movie) {
	n.publish(ctx, ChannelMovies, pubsub.NewEvent(EventMoviePublished, map[string]any{
		"movie": response.MovieToResponse(movie),
	}))
}

func (n *notifier) ContactSubmitted(ctx context.Context, contact *entity.Contact) {
	n.publish(ctx, ChannelAdmin, pubsub.NewEvent(EventContactSubmitted, map[string]any{
		"contact": response.ContactToResponse(contact),
	}))
}

func (n *notifier) publish(ctx context.Context, channel string, event pubsub.Event) {
	if n.publisher == nil {
		return
	}

	// the request may finish before the broker answers
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.publisher.Publish(ctx, channel, event); err != nil {
		n.log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("channel", channel),
			zap.String("event", event.Name),
		)
		return
	}

	n.log.Debug("Event published", zap.String("channel", channel), zap.String("event", event.Name))
}
