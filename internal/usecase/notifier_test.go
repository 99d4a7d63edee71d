package usecase

import (
	"context"
	"errors"
	"testing"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNotifier_SwallowsPublishErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	publisher := &recordingPublisher{err: errors.New("broker down")}
	n := NewNotifier(publisher, 0, zap.New(core))

	assert.NotPanics(t, func() {
		n.MoviePublished(context.Background(), &entity.Movie{Base: entity.NewBase(), Title: "Heat"})
	})

	entries := logs.FilterMessage("Failed to publish event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, ChannelMovies, entries[0].ContextMap()["channel"])
}

func TestNotifier_NilPublisherIsNoop(t *testing.T) {
	n := NewNotifier(nil, 0, zap.NewNop())

	assert.NotPanics(t, func() {
		n.ContactSubmitted(context.Background(), &entity.Contact{Base: entity.NewBase()})
	})
}

func TestNotifier_OutlivesCancelledRequest(t *testing.T) {
	publisher := &recordingPublisher{}
	n := NewNotifier(publisher, 0, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.MoviePublished(ctx, &entity.Movie{Base: entity.NewBase()})

	assert.Len(t, publisher.published(), 1)
}

func TestSubmitContact_NotifiesAdmins(t *testing.T) {
	store := newMemStore()
	publisher := &recordingPublisher{}
	svc := NewContactService(store.repository(), NewNotifier(publisher, 0, zap.NewNop()), zap.NewNop())
	userID := uuid.New()

	contact, err := svc.SubmitContact(context.Background(), &userID, &request.ContactRequest{
		Name:    "Ada",
		Email:   "Ada@Example.COM",
		Subject: "Lost umbrella",
		Message: "Left it in hall 2.",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", contact.Email)
	assert.Equal(t, entity.ContactStatusUnread, contact.Status)
	assert.Len(t, store.contacts, 1)

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, ChannelAdmin, events[0].Channel)
	assert.Equal(t, EventContactSubmitted, events[0].Event.Name)
}

func TestSubmitContact_PublishFailureDoesNotFailRequest(t *testing.T) {
	store := newMemStore()
	publisher := &recordingPublisher{err: errors.New("unreachable")}
	svc := NewContactService(store.repository(), NewNotifier(publisher, 0, zap.NewNop()), zap.NewNop())

	_, err := svc.SubmitContact(context.Background(), nil, &request.ContactRequest{
		Name:    "Guest",
		Email:   "guest@example.com",
		Subject: "Hi",
		Message: "Hello",
	})
	assert.NoError(t, err)
	assert.Len(t, store.contacts, 1)
}
