package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetShowtime_ReportsBookedSeats(t *testing.T) {
	f := newCinemaFixture()
	ctx := context.Background()

	_, err := f.bookingService().CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A2"),
	})
	require.NoError(t, err)

	got, err := f.showtimeService().GetShowtime(ctx, f.showtime.ID.String())
	require.NoError(t, err)

	assert.Equal(t, []string{f.seats["A2"].ID.String()}, got.BookedSeats)
	require.NotNil(t, got.Showtime.Hall)
	assert.Len(t, got.Showtime.Hall.Seats, 3)
	require.NotNil(t, got.Showtime.Movie)
	assert.Equal(t, f.movie.Title, got.Showtime.Movie.Title)
}

func TestGetShowtime_IsIdempotent(t *testing.T) {
	f := newCinemaFixture()
	ctx := context.Background()

	_, err := f.bookingService().CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1", "A3"),
	})
	require.NoError(t, err)

	svc := f.showtimeService()
	first, err := svc.GetShowtime(ctx, f.showtime.ID.String())
	require.NoError(t, err)
	second, err := svc.GetShowtime(ctx, f.showtime.ID.String())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.store.bookingCount())
}

func TestGetShowtime_EmptyWhenNothingBooked(t *testing.T) {
	f := newCinemaFixture()

	got, err := f.showtimeService().GetShowtime(context.Background(), f.showtime.ID.String())
	require.NoError(t, err)
	assert.NotNil(t, got.BookedSeats)
	assert.Empty(t, got.BookedSeats)
}

func TestGetShowtime_NotFound(t *testing.T) {
	f := newCinemaFixture()
	svc := f.showtimeService()

	for _, id := range []string{uuid.NewString(), "garbage"} {
		_, err := svc.GetShowtime(context.Background(), id)
		assert.True(t, errors.Is(err, utils.ErrNotFound), id)
	}
}

func TestGetShowtimeTickets_IncludesVoidTickets(t *testing.T) {
	f := newCinemaFixture()
	ctx := context.Background()
	bookings := f.bookingService()

	kept, err := bookings.CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1"),
	})
	require.NoError(t, err)
	dropped, err := bookings.CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A2"),
	})
	require.NoError(t, err)
	_, err = bookings.CancelBooking(ctx, dropped.ID)
	require.NoError(t, err)

	tickets, err := f.showtimeService().GetShowtimeTickets(ctx, f.showtime.ID.String())
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	statuses := map[string]entity.TicketStatus{}
	for _, ticket := range tickets {
		statuses[ticket.SeatID] = ticket.Status
	}
	assert.Equal(t, entity.TicketStatusValid, statuses[kept.Tickets[0].SeatID])
	assert.Equal(t, entity.TicketStatusVoid, statuses[f.seats["A2"].ID.String()])

	_, err = f.showtimeService().GetShowtimeTickets(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var verr *utils.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	assert.Contains(t, verr.Fields, field)
}

func (f *cinemaFixture) showtimeCount() int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return len(f.store.showtimes)
}

func (f *cinemaFixture) storedShowtime(id uuid.UUID) entity.Showtime {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return *f.store.showtimes[id]
}

func TestCreateShowtime_DefaultsEndToMovieDuration(t *testing.T) {
	f := newCinemaFixture()
	start := f.showtime.EndsAt.Add(time.Hour)

	got, err := f.showtimeService().CreateShowtime(context.Background(), &request.ShowtimeRequest{
		MovieID:     f.movie.ID.String(),
		HallID:      f.hall.ID.String(),
		StartsAt:    start,
		PriceMatrix: map[string]decimal.Decimal{"standard": decimal.RequireFromString("9.00")},
	})
	require.NoError(t, err)

	assert.True(t, got.StartsAt.Equal(start))
	assert.True(t, got.EndsAt.Equal(start.Add(116*time.Minute)))
	assert.Equal(t, 2, f.showtimeCount())
}

func TestCreateShowtime_ExplicitEnd(t *testing.T) {
	f := newCinemaFixture()
	start := f.showtime.EndsAt.Add(time.Hour)
	end := start.Add(3 * time.Hour)

	got, err := f.showtimeService().CreateShowtime(context.Background(), &request.ShowtimeRequest{
		MovieID:  f.movie.ID.String(),
		HallID:   f.hall.ID.String(),
		StartsAt: start,
		EndsAt:   &end,
	})
	require.NoError(t, err)
	assert.True(t, got.EndsAt.Equal(end))
	assert.NotNil(t, got.PriceMatrix)
}

func TestCreateShowtime_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		field string
		build func(f *cinemaFixture) *request.ShowtimeRequest
	}{
		{
			name:  "end before start",
			field: "ends_at",
			build: func(f *cinemaFixture) *request.ShowtimeRequest {
				start := f.showtime.EndsAt.Add(time.Hour)
				end := start.Add(-time.Minute)
				return &request.ShowtimeRequest{MovieID: f.movie.ID.String(), HallID: f.hall.ID.String(), StartsAt: start, EndsAt: &end}
			},
		},
		{
			name:  "end equals start",
			field: "ends_at",
			build: func(f *cinemaFixture) *request.ShowtimeRequest {
				start := f.showtime.EndsAt.Add(time.Hour)
				return &request.ShowtimeRequest{MovieID: f.movie.ID.String(), HallID: f.hall.ID.String(), StartsAt: start, EndsAt: &start}
			},
		},
		{
			name:  "negative price",
			field: "price_matrix.vip",
			build: func(f *cinemaFixture) *request.ShowtimeRequest {
				return &request.ShowtimeRequest{
					MovieID:  f.movie.ID.String(),
					HallID:   f.hall.ID.String(),
					StartsAt: f.showtime.EndsAt.Add(time.Hour),
					PriceMatrix: map[string]decimal.Decimal{
						"standard": decimal.RequireFromString("10.00"),
						"vip":      decimal.RequireFromString("-1.00"),
					},
				}
			},
		},
		{
			name:  "overlaps showtime in same hall",
			field: "starts_at",
			build: func(f *cinemaFixture) *request.ShowtimeRequest {
				return &request.ShowtimeRequest{
					MovieID:  f.movie.ID.String(),
					HallID:   f.hall.ID.String(),
					StartsAt: f.showtime.StartsAt.Add(30 * time.Minute),
				}
			},
		},
		{
			name:  "unknown movie",
			field: "movie_id",
			build: func(f *cinemaFixture) *request.ShowtimeRequest {
				return &request.ShowtimeRequest{MovieID: uuid.NewString(), HallID: f.hall.ID.String(), StartsAt: f.showtime.EndsAt.Add(time.Hour)}
			},
		},
		{
			name:  "unknown hall",
			field: "hall_id",
			build: func(f *cinemaFixture) *request.ShowtimeRequest {
				return &request.ShowtimeRequest{MovieID: f.movie.ID.String(), HallID: uuid.NewString(), StartsAt: f.showtime.EndsAt.Add(time.Hour)}
			},
		},
		{
			name:  "malformed hall id",
			field: "hall_id",
			build: func(f *cinemaFixture) *request.ShowtimeRequest {
				return &request.ShowtimeRequest{MovieID: f.movie.ID.String(), HallID: "hall-1", StartsAt: f.showtime.EndsAt.Add(time.Hour)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCinemaFixture()

			_, err := f.showtimeService().CreateShowtime(context.Background(), tt.build(f))
			requireFieldError(t, err, tt.field)
			assert.Equal(t, 1, f.showtimeCount())
		})
	}
}

func TestCreateShowtime_SameWindowInOtherHall(t *testing.T) {
	f := newCinemaFixture()
	other := f.addHall("Hall 2")

	_, err := f.showtimeService().CreateShowtime(context.Background(), &request.ShowtimeRequest{
		MovieID:  f.movie.ID.String(),
		HallID:   other.ID.String(),
		StartsAt: f.showtime.StartsAt,
		EndsAt:   &f.showtime.EndsAt,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.showtimeCount())
}

func TestUpdateShowtime_RejectsHallChangeWithActiveBookings(t *testing.T) {
	f := newCinemaFixture()
	ctx := context.Background()
	other := f.addHall("Hall 2")

	_, err := f.bookingService().CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1"),
	})
	require.NoError(t, err)

	hallID := other.ID.String()
	_, err = f.showtimeService().UpdateShowtime(ctx, f.showtime.ID.String(), &request.ShowtimeUpdateRequest{HallID: &hallID})
	requireFieldError(t, err, "hall_id")
	assert.Equal(t, f.hall.ID, f.storedShowtime(f.showtime.ID).HallID)

	// seat map and booked seats still describe the same hall
	seatMap, err := f.showtimeService().GetShowtime(ctx, f.showtime.ID.String())
	require.NoError(t, err)
	assert.Equal(t, f.hall.ID.String(), seatMap.Showtime.HallID)
	assert.Equal(t, []string{f.seats["A1"].ID.String()}, seatMap.BookedSeats)
}

func TestUpdateShowtime_MovesHallOnceBookingsAreCancelled(t *testing.T) {
	f := newCinemaFixture()
	ctx := context.Background()
	other := f.addHall("Hall 2")

	booking, err := f.bookingService().CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1"),
	})
	require.NoError(t, err)
	_, err = f.bookingService().CancelBooking(ctx, booking.ID)
	require.NoError(t, err)

	hallID := other.ID.String()
	got, err := f.showtimeService().UpdateShowtime(ctx, f.showtime.ID.String(), &request.ShowtimeUpdateRequest{HallID: &hallID})
	require.NoError(t, err)
	assert.Equal(t, hallID, got.HallID)
	assert.Equal(t, other.ID, f.storedShowtime(f.showtime.ID).HallID)
}

func TestUpdateShowtime_SameHallWithBookingsAllowed(t *testing.T) {
	f := newCinemaFixture()
	ctx := context.Background()

	_, err := f.bookingService().CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1"),
	})
	require.NoError(t, err)

	hallID := f.hall.ID.String()
	_, err = f.showtimeService().UpdateShowtime(ctx, f.showtime.ID.String(), &request.ShowtimeUpdateRequest{
		HallID:      &hallID,
		PriceMatrix: map[string]decimal.Decimal{"standard": decimal.RequireFromString("15.00")},
	})
	require.NoError(t, err)

	price, ok := f.storedShowtime(f.showtime.ID).PriceMatrix.Standard()
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("15").Equal(price))
}

func TestUpdateShowtime_MovingStartKeepsLength(t *testing.T) {
	f := newCinemaFixture()
	start := f.showtime.StartsAt.Add(3 * time.Hour)

	got, err := f.showtimeService().UpdateShowtime(context.Background(), f.showtime.ID.String(), &request.ShowtimeUpdateRequest{
		StartsAt: &start,
	})
	require.NoError(t, err)
	assert.True(t, got.StartsAt.Equal(start))
	assert.True(t, got.EndsAt.Equal(start.Add(2*time.Hour)))
}

func TestUpdateShowtime_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		field string
		build func(f *cinemaFixture) *request.ShowtimeUpdateRequest
	}{
		{
			name:  "end before start",
			field: "ends_at",
			build: func(f *cinemaFixture) *request.ShowtimeUpdateRequest {
				end := f.showtime.StartsAt.Add(-time.Hour)
				return &request.ShowtimeUpdateRequest{EndsAt: &end}
			},
		},
		{
			name:  "negative price",
			field: "price_matrix.standard",
			build: func(f *cinemaFixture) *request.ShowtimeUpdateRequest {
				return &request.ShowtimeUpdateRequest{
					PriceMatrix: map[string]decimal.Decimal{"standard": decimal.RequireFromString("-0.01")},
				}
			},
		},
		{
			name:  "overlaps later showtime",
			field: "starts_at",
			build: func(f *cinemaFixture) *request.ShowtimeUpdateRequest {
				later := &entity.Showtime{
					Base:     entity.NewBase(),
					MovieID:  f.movie.ID,
					HallID:   f.hall.ID,
					StartsAt: f.showtime.EndsAt.Add(time.Hour),
					EndsAt:   f.showtime.EndsAt.Add(3 * time.Hour),
				}
				f.store.showtimes[later.ID] = later

				end := f.showtime.EndsAt.Add(90 * time.Minute)
				return &request.ShowtimeUpdateRequest{EndsAt: &end}
			},
		},
		{
			name:  "unknown movie",
			field: "movie_id",
			build: func(f *cinemaFixture) *request.ShowtimeUpdateRequest {
				id := uuid.NewString()
				return &request.ShowtimeUpdateRequest{MovieID: &id}
			},
		},
		{
			name:  "unknown hall",
			field: "hall_id",
			build: func(f *cinemaFixture) *request.ShowtimeUpdateRequest {
				id := uuid.NewString()
				return &request.ShowtimeUpdateRequest{HallID: &id}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCinemaFixture()
			before := f.storedShowtime(f.showtime.ID)

			_, err := f.showtimeService().UpdateShowtime(context.Background(), f.showtime.ID.String(), tt.build(f))
			requireFieldError(t, err, tt.field)

			after := f.storedShowtime(f.showtime.ID)
			assert.Equal(t, before.HallID, after.HallID)
			assert.True(t, before.EndsAt.Equal(after.EndsAt))
		})
	}
}

func TestUpdateShowtime_NotFound(t *testing.T) {
	f := newCinemaFixture()

	_, err := f.showtimeService().UpdateShowtime(context.Background(), uuid.NewString(), &request.ShowtimeUpdateRequest{})
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}
