package entity

import "github.com/google/uuid"

type Hall struct {
	Base
	CinemaID uuid.UUID `db:"cinema_id"`
	Name     string    `db:"name"`
	Capacity int       `db:"capacity"`
	Rows     int       `db:"layout_rows"`
	Columns  int       `db:"layout_columns"`

	Cinema *Cinema `db:"-"`
	Seats  []*Seat `db:"-"`
}
