package entity

import (
	"strconv"

	"github.com/google/uuid"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusBlocked   SeatStatus = "blocked"
)

type Seat struct {
	Base
	HallID     uuid.UUID  `db:"hall_id"`
	RowLabel   string     `db:"row_label"`
	SeatNumber int        `db:"seat_number"`
	SeatTypeID *uuid.UUID `db:"seat_type_id"`
	Status     SeatStatus `db:"status"`

	SeatType *SeatType `db:"-"`
}

func (s *Seat) Label() string {
	return s.RowLabel + strconv.Itoa(s.SeatNumber)
}
