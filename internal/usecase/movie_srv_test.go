package usecase

import (
	"context"
	"testing"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMovieServiceWithPublisher(store *memStore) (MovieService, *recordingPublisher) {
	publisher := &recordingPublisher{}
	notifier := NewNotifier(publisher, 0, zap.NewNop())
	return NewMovieService(store.repository(), notifier, zap.NewNop()), publisher
}

func TestCreateMovie_PublishedMovieIsAnnounced(t *testing.T) {
	svc, publisher := newMovieServiceWithPublisher(newMemStore())

	movie, err := svc.CreateMovie(context.Background(), &request.MovieRequest{
		Title:           "Dune: Part Two",
		DurationMinutes: 166,
		Status:          string(entity.MovieStatusNowShowing),
	})
	require.NoError(t, err)
	assert.Equal(t, "dune-part-two", movie.Slug)

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, ChannelMovies, events[0].Channel)
	assert.Equal(t, EventMoviePublished, events[0].Event.Name)

	payload, ok := events[0].Event.Data.(map[string]any)
	require.True(t, ok)
	announced, ok := payload["movie"].(response.MovieResponse)
	require.True(t, ok)
	assert.Equal(t, movie.ID, announced.ID)
}

func TestCreateMovie_DraftIsNotAnnounced(t *testing.T) {
	svc, publisher := newMovieServiceWithPublisher(newMemStore())

	_, err := svc.CreateMovie(context.Background(), &request.MovieRequest{
		Title:           "Work In Progress",
		DurationMinutes: 90,
		Status:          string(entity.MovieStatusDraft),
	})
	require.NoError(t, err)
	assert.Empty(t, publisher.published())
}

func TestUpdateMovie_AnnouncesOnlyWhenLeavingDraft(t *testing.T) {
	svc, publisher := newMovieServiceWithPublisher(newMemStore())
	ctx := context.Background()

	movie, err := svc.CreateMovie(ctx, &request.MovieRequest{
		Title:           "Sleeper",
		DurationMinutes: 100,
		Status:          string(entity.MovieStatusDraft),
	})
	require.NoError(t, err)

	comingSoon := string(entity.MovieStatusComingSoon)
	_, err = svc.UpdateMovie(ctx, movie.ID, &request.MovieUpdateRequest{Status: &comingSoon})
	require.NoError(t, err)
	require.Len(t, publisher.published(), 1)

	nowShowing := string(entity.MovieStatusNowShowing)
	_, err = svc.UpdateMovie(ctx, movie.ID, &request.MovieUpdateRequest{Status: &nowShowing})
	require.NoError(t, err)
	assert.Len(t, publisher.published(), 1)
}

func TestCreateMovie_SlugsAreUnique(t *testing.T) {
	svc, _ := newMovieServiceWithPublisher(newMemStore())
	ctx := context.Background()

	req := &request.MovieRequest{Title: "Solaris", DurationMinutes: 167, Status: string(entity.MovieStatusDraft)}
	first, err := svc.CreateMovie(ctx, req)
	require.NoError(t, err)
	second, err := svc.CreateMovie(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "solaris", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
}
