package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func bookingConfig() utils.BookingConfig {
	return utils.BookingConfig{DefaultUnitPrice: decimal.RequireFromString("10.00")}
}

func TestCreateBooking_ConfirmsFreeSeats(t *testing.T) {
	f := newCinemaFixture()
	svc := f.bookingService()
	userID := uuid.New()

	resp, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1", "A2"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, userID.String(), resp.UserID)
	assert.Equal(t, f.showtime.ID.String(), resp.ShowtimeID)
	assert.True(t, f.unit.Mul(decimal.NewFromInt(2)).Equal(resp.TotalPrice), "total %s", resp.TotalPrice)
	assert.Len(t, resp.ConfirmationCode, 10)
	require.Len(t, resp.Tickets, 2)
	for _, ticket := range resp.Tickets {
		assert.True(t, f.unit.Equal(ticket.Price))
		assert.Equal(t, entity.TicketStatusValid, ticket.Status)
	}

	assert.Equal(t, 1, f.store.bookingCount())
	assert.Equal(t, 2, f.store.ticketCount())
}

func TestCreateBooking_OverlappingSeatsConflict(t *testing.T) {
	f := newCinemaFixture()
	svc := f.bookingService()
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1", "A2"),
	})
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1", "A3"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrConflict))

	var conflict *utils.ConflictError
	require.True(t, errors.As(err, &conflict))
	details, ok := conflict.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{f.seats["A1"].ID.String()}, details["seat_ids"])

	// nothing of the second attempt was written
	assert.Equal(t, 1, f.store.bookingCount())
	assert.Equal(t, 2, f.store.ticketCount())
}

func TestCreateBooking_ConcurrentOverlapOnlyOneWins(t *testing.T) {
	f := newCinemaFixture()
	svc := f.bookingService()
	ctx := context.Background()

	const attempts = 16
	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		errs      = make([]error, attempts)
		confirmed = make([]string, attempts)
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			// every attempt wants A1; half of them also want a second seat
			labels := []string{"A1"}
			if i%2 == 0 {
				labels = append(labels, "A3")
			}
			resp, err := svc.CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
				ShowtimeID: f.showtime.ID.String(),
				SeatIDs:    f.seatIDs(labels...),
			})
			errs[i] = err
			if err == nil {
				confirmed[i] = resp.ID
			}
		}(i)
	}
	close(start)
	wg.Wait()

	wins := 0
	for i, err := range errs {
		if err == nil {
			wins++
			assert.NotEmpty(t, confirmed[i])
			continue
		}
		assert.True(t, errors.Is(err, utils.ErrConflict), "attempt %d: %v", i, err)
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, f.store.bookingCount())

	booked, err := f.store.repository().Booking.FindBookedSeatIDs(ctx, f.showtime.ID)
	require.NoError(t, err)
	assert.Contains(t, booked, f.seats["A1"].ID)
}

func TestCreateBooking_DeletedBookingReleasesSeats(t *testing.T) {
	f := newCinemaFixture()
	svc := f.bookingService()
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1", "A2"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBooking(ctx, first.ID))

	second, err := svc.CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1", "A3"),
	})
	require.NoError(t, err)
	assert.Len(t, second.Tickets, 2)
}

func TestCreateBooking_CancelledBookingReleasesSeats(t *testing.T) {
	f := newCinemaFixture()
	svc := f.bookingService()
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A2"),
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)

	_, err = svc.CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A2"),
	})
	assert.NoError(t, err)
}

func TestCreateBooking_TotalIsSumOfTicketPrices(t *testing.T) {
	f := newCinemaFixture()
	premium := &entity.SeatType{Base: entity.NewBase(), Name: "premium", PriceMultiplier: decimal.RequireFromString("1.5")}
	vip := &entity.SeatType{Base: entity.NewBase(), Name: "vip", PriceMultiplier: decimal.RequireFromString("3")}
	f.seats["A2"].SeatType, f.seats["A2"].SeatTypeID = premium, &premium.ID
	f.seats["A3"].SeatType, f.seats["A3"].SeatTypeID = vip, &vip.ID
	f.showtime.PriceMatrix["vip"] = decimal.RequireFromString("20.00")

	resp, err := f.bookingService().CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1", "A2", "A3"),
	})
	require.NoError(t, err)

	sum := decimal.Zero
	prices := map[string]decimal.Decimal{}
	for _, ticket := range resp.Tickets {
		sum = sum.Add(ticket.Price)
		prices[ticket.SeatID] = ticket.Price
	}
	assert.True(t, sum.Equal(resp.TotalPrice), "sum %s total %s", sum, resp.TotalPrice)
	assert.Equal(t, "12.50", prices[f.seats["A1"].ID.String()].StringFixed(2))
	assert.Equal(t, "18.75", prices[f.seats["A2"].ID.String()].StringFixed(2))
	assert.Equal(t, "20.00", prices[f.seats["A3"].ID.String()].StringFixed(2))
	assert.Equal(t, "51.25", resp.TotalPrice.StringFixed(2))
}

func TestCreateBooking_EmptySeatListRejectedBeforeStorage(t *testing.T) {
	// every repository is nil: touching storage would panic
	svc := NewBookingService(&repository.Repository{}, bookingConfig(), zap.NewNop())

	for name, seats := range map[string][]string{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
				ShowtimeID: uuid.NewString(),
				SeatIDs:    seats,
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, utils.ErrValidation))

			var verr *utils.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, "seat_ids")
		})
	}
}

func TestCreateBooking_RejectsUnbookableSeats(t *testing.T) {
	f := newCinemaFixture()

	otherHall := &entity.Hall{Base: entity.NewBase(), CinemaID: f.cinema.ID, Name: "Hall 2", Rows: 1, Columns: 1}
	foreign := SeatGrid(otherHall, nil)[0]
	f.store.halls[otherHall.ID] = otherHall
	f.store.seats[foreign.ID] = foreign

	f.seats["A3"].Status = entity.SeatStatusBlocked

	tests := []struct {
		name    string
		seatIDs []string
		message string
	}{
		{"nonexistent seat", []string{f.seats["A1"].ID.String(), uuid.NewString()}, "Seats do not exist"},
		{"seat of another hall", []string{foreign.ID.String()}, "not in the showtime's hall"},
		{"blocked seat", f.seatIDs("A3"), "Seats are not available: A3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.bookingService().CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
				ShowtimeID: f.showtime.ID.String(),
				SeatIDs:    tt.seatIDs,
			})
			require.Error(t, err)

			var verr *utils.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields["seat_ids"], tt.message)
			assert.Equal(t, 0, f.store.bookingCount())
			assert.Equal(t, 0, f.store.ticketCount())
		})
	}
}

func TestCreateBooking_UnknownShowtime(t *testing.T) {
	f := newCinemaFixture()

	_, err := f.bookingService().CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: uuid.NewString(),
		SeatIDs:    f.seatIDs("A1"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
	assert.Equal(t, 0, f.store.bookingCount())
}

func TestCreateBooking_FallsBackToDefaultTenant(t *testing.T) {
	f := newCinemaFixture()

	resp, err := f.bookingService().CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1"),
	})
	require.NoError(t, err)

	require.Len(t, f.store.tenants, 1)
	for id, tenant := range f.store.tenants {
		assert.True(t, tenant.IsDefault)
		assert.Equal(t, id.String(), resp.TenantID)
	}
}

func TestCreateBooking_UsesCinemaTenant(t *testing.T) {
	f := newCinemaFixture()
	tenantID := uuid.New()
	f.cinema.TenantID = &tenantID

	resp, err := f.bookingService().CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1"),
	})
	require.NoError(t, err)
	assert.Equal(t, tenantID.String(), resp.TenantID)
	assert.Empty(t, f.store.tenants)
}

func TestCreateBooking_RetriesConfirmationCodeCollision(t *testing.T) {
	f := newCinemaFixture()
	f.store.codeCollisions = confirmationCodeAttempts - 1

	resp, err := f.bookingService().CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ConfirmationCode)
	assert.Equal(t, 1, f.store.bookingCount())
}

func TestCreateBooking_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newCinemaFixture()
	f.store.codeCollisions = confirmationCodeAttempts

	_, err := f.bookingService().CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrConfirmationCodeTaken))
	assert.Equal(t, 0, f.store.bookingCount())
}

func TestGetUserBooking_HidesOtherUsersBookings(t *testing.T) {
	f := newCinemaFixture()
	svc := f.bookingService()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateBooking(ctx, owner, &request.CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    f.seatIDs("A1"),
	})
	require.NoError(t, err)

	got, err := svc.GetUserBooking(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ConfirmationCode, got.ConfirmationCode)

	_, err = svc.GetUserBooking(ctx, uuid.New(), created.ID)
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	_, err = svc.GetUserBooking(ctx, owner, "not-a-uuid")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestSeatPrice(t *testing.T) {
	base := decimal.RequireFromString("10.00")
	matrix := entity.PriceMatrix{
		entity.SeatTypeStandard: base,
		"vip":                   decimal.RequireFromString("25.00"),
	}

	tests := []struct {
		name string
		seat *entity.Seat
		want string
	}{
		{"no seat", nil, "10.00"},
		{"untyped seat", &entity.Seat{}, "10.00"},
		{"explicit matrix entry", &entity.Seat{SeatType: &entity.SeatType{Name: "vip", PriceMultiplier: decimal.NewFromInt(5)}}, "25.00"},
		{"matrix entry matched case-insensitively", &entity.Seat{SeatType: &entity.SeatType{Name: "VIP"}}, "25.00"},
		{"multiplier", &entity.Seat{SeatType: &entity.SeatType{Name: "premium", PriceMultiplier: decimal.RequireFromString("1.25")}}, "12.50"},
		{"non-positive multiplier", &entity.Seat{SeatType: &entity.SeatType{Name: "odd", PriceMultiplier: decimal.Zero}}, "10.00"},
		{"rounded to cents", &entity.Seat{SeatType: &entity.SeatType{Name: "third", PriceMultiplier: decimal.RequireFromString("0.333")}}, "3.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeatPrice(matrix, base, tt.seat).StringFixed(2))
		})
	}
}

func TestBasePrice_FallsBackWithoutStandardEntry(t *testing.T) {
	fallback := decimal.RequireFromString("9.99")

	assert.True(t, fallback.Equal(basePrice(entity.PriceMatrix{}, fallback)))
	assert.True(t, decimal.NewFromInt(7).Equal(basePrice(entity.PriceMatrix{entity.SeatTypeStandard: decimal.NewFromInt(7)}, fallback)))
}
