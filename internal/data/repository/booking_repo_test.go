package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	lockShowtimeSQL  = regexp.QuoteMeta(`SELECT id FROM showtimes WHERE id = $1 FOR UPDATE`)
	seatConflictSQL  = regexp.QuoteMeta(`AND t.seat_id = ANY($3)`)
	insertBookingSQL = regexp.QuoteMeta(`INSERT INTO bookings`)
	insertTicketSQL  = regexp.QuoteMeta(`INSERT INTO tickets`)
)

func newBookingWithTickets(seats int) (*entity.Booking, []*entity.Ticket) {
	booking := &entity.Booking{
		Base:             entity.NewBase(),
		TenantID:         uuid.New(),
		UserID:           uuid.New(),
		ShowtimeID:       uuid.New(),
		Status:           entity.BookingStatusConfirmed,
		ConfirmationCode: "ABCDEFGHJK",
		TotalPrice:       decimal.Zero,
	}

	tickets := make([]*entity.Ticket, 0, seats)
	for i := 0; i < seats; i++ {
		price := decimal.RequireFromString("12.50")
		tickets = append(tickets, &entity.Ticket{
			BaseSimple: entity.NewBaseSimple(),
			BookingID:  booking.ID,
			ShowtimeID: booking.ShowtimeID,
			SeatID:     uuid.New(),
			Price:      price,
			Status:     entity.TicketStatusValid,
		})
		booking.TotalPrice = booking.TotalPrice.Add(price)
	}
	return booking, tickets
}

func requestedSeats(tickets []*entity.Ticket) []uuid.UUID {
	return seatIDs(tickets)
}

func TestCreateWithTickets_Commits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, zap.NewNop())
	booking, tickets := newBookingWithTickets(2)

	mock.ExpectBegin()
	mock.ExpectQuery(lockShowtimeSQL).
		WithArgs(booking.ShowtimeID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(booking.ShowtimeID))
	mock.ExpectQuery(seatConflictSQL).
		WithArgs(booking.ShowtimeID, entity.ActiveBookingStatuses, requestedSeats(tickets)).
		WillReturnRows(pgxmock.NewRows([]string{"seat_id"}))
	mock.ExpectExec(insertBookingSQL).
		WithArgs(booking.ID, booking.TenantID, booking.UserID, booking.ShowtimeID,
			pgxmock.AnyArg(), booking.Status, booking.PaymentReference, booking.ConfirmationCode,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, ticket := range tickets {
		mock.ExpectExec(insertTicketSQL).
			WithArgs(ticket.ID, booking.ID, booking.ShowtimeID, ticket.SeatID,
				pgxmock.AnyArg(), ticket.Status, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.CreateWithTickets(context.Background(), booking, tickets))
	assert.Len(t, booking.Tickets, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTickets_HeldSeatsRollBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, zap.NewNop())
	booking, tickets := newBookingWithTickets(2)
	held := tickets[0].SeatID

	mock.ExpectBegin()
	mock.ExpectQuery(lockShowtimeSQL).
		WithArgs(booking.ShowtimeID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(booking.ShowtimeID))
	mock.ExpectQuery(seatConflictSQL).
		WithArgs(booking.ShowtimeID, entity.ActiveBookingStatuses, requestedSeats(tickets)).
		WillReturnRows(pgxmock.NewRows([]string{"seat_id"}).AddRow(held))
	mock.ExpectRollback()

	err = repo.CreateWithTickets(context.Background(), booking, tickets)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrConflict))

	var taken *SeatsTakenError
	require.True(t, errors.As(err, &taken))
	assert.Equal(t, []uuid.UUID{held}, taken.SeatIDs)
	assert.Nil(t, booking.Tickets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTickets_UnknownShowtime(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, zap.NewNop())
	booking, tickets := newBookingWithTickets(1)

	mock.ExpectBegin()
	mock.ExpectQuery(lockShowtimeSQL).
		WithArgs(booking.ShowtimeID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err = repo.CreateWithTickets(context.Background(), booking, tickets)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTickets_ConstraintViolations(t *testing.T) {
	tests := []struct {
		name  string
		pgErr *pgconn.PgError
		check func(t *testing.T, err error, tickets []*entity.Ticket)
	}{
		{
			name:  "active seat index",
			pgErr: &pgconn.PgError{Code: "23505", ConstraintName: "tickets_active_seat_key"},
			check: func(t *testing.T, err error, tickets []*entity.Ticket) {
				var taken *SeatsTakenError
				require.True(t, errors.As(err, &taken))
				assert.ElementsMatch(t, requestedSeats(tickets), taken.SeatIDs)
			},
		},
		{
			name:  "seat foreign key",
			pgErr: &pgconn.PgError{Code: "23503", ConstraintName: "tickets_seat_id_fkey"},
			check: func(t *testing.T, err error, _ []*entity.Ticket) {
				assert.True(t, errors.Is(err, utils.ErrValidation))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewBookingRepository(mock, zap.NewNop())
			booking, tickets := newBookingWithTickets(1)

			mock.ExpectBegin()
			mock.ExpectQuery(lockShowtimeSQL).
				WithArgs(booking.ShowtimeID).
				WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(booking.ShowtimeID))
			mock.ExpectQuery(seatConflictSQL).
				WithArgs(booking.ShowtimeID, entity.ActiveBookingStatuses, requestedSeats(tickets)).
				WillReturnRows(pgxmock.NewRows([]string{"seat_id"}))
			mock.ExpectExec(insertBookingSQL).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
					pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
			mock.ExpectExec(insertTicketSQL).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
					pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(tt.pgErr)
			mock.ExpectRollback()

			err = repo.CreateWithTickets(context.Background(), booking, tickets)
			require.Error(t, err)
			tt.check(t, err, tickets)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateWithTickets_ConfirmationCodeCollision(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, zap.NewNop())
	booking, tickets := newBookingWithTickets(1)

	mock.ExpectBegin()
	mock.ExpectQuery(lockShowtimeSQL).
		WithArgs(booking.ShowtimeID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(booking.ShowtimeID))
	mock.ExpectQuery(seatConflictSQL).
		WithArgs(booking.ShowtimeID, entity.ActiveBookingStatuses, requestedSeats(tickets)).
		WillReturnRows(pgxmock.NewRows([]string{"seat_id"}))
	mock.ExpectExec(insertBookingSQL).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "bookings_confirmation_code_key"})
	mock.ExpectRollback()

	err = repo.CreateWithTickets(context.Background(), booking, tickets)
	assert.True(t, errors.Is(err, ErrConfirmationCodeTaken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBookedSeatIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, zap.NewNop())
	showtimeID := uuid.New()
	a, b := uuid.New(), uuid.New()

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT t.seat_id`)).
			WithArgs(showtimeID, entity.ActiveBookingStatuses).
			WillReturnRows(pgxmock.NewRows([]string{"seat_id"}).AddRow(a).AddRow(b))
	}

	first, err := repo.FindBookedSeatIDs(context.Background(), showtimeID)
	require.NoError(t, err)
	second, err := repo.FindBookedSeatIDs(context.Background(), showtimeID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{a, b}, first)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}
