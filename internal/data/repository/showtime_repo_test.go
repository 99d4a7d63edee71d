package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	lockShowtimeHallSQL = regexp.QuoteMeta(`SELECT hall_id FROM showtimes WHERE id = $1 FOR UPDATE`)
	heldSeatsExistSQL   = regexp.QuoteMeta(`SELECT EXISTS (`)
	updateShowtimeSQL   = regexp.QuoteMeta(`UPDATE showtimes`)
)

func newShowtime(hallID uuid.UUID) *entity.Showtime {
	start := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)
	return &entity.Showtime{
		Base:     entity.NewBase(),
		MovieID:  uuid.New(),
		HallID:   hallID,
		StartsAt: start,
		EndsAt:   start.Add(2 * time.Hour),
	}
}

func expectShowtimeUpdate(mock pgxmock.PgxPoolIface, showtime *entity.Showtime) {
	mock.ExpectExec(updateShowtimeSQL).
		WithArgs(showtime.ID, showtime.MovieID, showtime.HallID, showtime.StartsAt, showtime.EndsAt,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
}

func TestShowtimeUpdate_HallChangeWithActiveBookingsRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewShowtimeRepository(mock, zap.NewNop())
	oldHall := uuid.New()
	showtime := newShowtime(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery(lockShowtimeHallSQL).
		WithArgs(showtime.ID).
		WillReturnRows(pgxmock.NewRows([]string{"hall_id"}).AddRow(oldHall))
	mock.ExpectQuery(heldSeatsExistSQL).
		WithArgs(showtime.ID, entity.ActiveBookingStatuses).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err = repo.Update(context.Background(), showtime)

	var verr *utils.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "hall_id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowtimeUpdate_HallChangeWithoutBookingsCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewShowtimeRepository(mock, zap.NewNop())
	showtime := newShowtime(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery(lockShowtimeHallSQL).
		WithArgs(showtime.ID).
		WillReturnRows(pgxmock.NewRows([]string{"hall_id"}).AddRow(uuid.New()))
	mock.ExpectQuery(heldSeatsExistSQL).
		WithArgs(showtime.ID, entity.ActiveBookingStatuses).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	expectShowtimeUpdate(mock, showtime)
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), showtime))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowtimeUpdate_SameHallSkipsBookingCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewShowtimeRepository(mock, zap.NewNop())
	showtime := newShowtime(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery(lockShowtimeHallSQL).
		WithArgs(showtime.ID).
		WillReturnRows(pgxmock.NewRows([]string{"hall_id"}).AddRow(showtime.HallID))
	expectShowtimeUpdate(mock, showtime)
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), showtime))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowtimeUpdate_UnknownShowtime(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewShowtimeRepository(mock, zap.NewNop())
	showtime := newShowtime(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery(lockShowtimeHallSQL).
		WithArgs(showtime.ID).
		WillReturnRows(pgxmock.NewRows([]string{"hall_id"}))
	mock.ExpectRollback()

	err = repo.Update(context.Background(), showtime)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
