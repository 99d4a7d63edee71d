package repository

import (
	"errors"
	"fmt"

	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SeatsTakenError is returned when seats are already held by an active
// booking for the showtime. It matches utils.ErrConflict.
type SeatsTakenError struct {
	ShowtimeID uuid.UUID
	SeatIDs    []uuid.UUID
}

func (e *SeatsTakenError) Error() string {
	if len(e.SeatIDs) == 0 {
		return fmt.Sprintf("seats already booked for showtime %s", e.ShowtimeID)
	}
	return fmt.Sprintf("%d seat(s) already booked for showtime %s", len(e.SeatIDs), e.ShowtimeID)
}

func (e *SeatsTakenError) Is(target error) bool {
	return target == utils.ErrConflict
}

// HallHasBookingsError rejects moving a showtime with active bookings to
// another hall, since its tickets reference seats of the current hall.
func HallHasBookingsError() *utils.ValidationError {
	return utils.NewValidationError("validation failed", map[string]string{
		"hall_id": "Showtime has active bookings and cannot change hall",
	})
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(scanner) (*T, error)) ([]*T, error) {
	defer rows.Close()

	var items []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return items, nil
}
