package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceMatrix maps a seat type name to a ticket price. Stored as JSONB.
type PriceMatrix map[string]decimal.Decimal

// Standard returns the "standard" entry if present.
func (m PriceMatrix) Standard() (decimal.Decimal, bool) {
	price, ok := m[SeatTypeStandard]
	return price, ok
}

type Showtime struct {
	Base
	MovieID     uuid.UUID   `db:"movie_id"`
	HallID      uuid.UUID   `db:"hall_id"`
	StartsAt    time.Time   `db:"starts_at"`
	EndsAt      time.Time   `db:"ends_at"`
	PriceMatrix PriceMatrix `db:"price_matrix"`

	Movie *Movie `db:"-"`
	Hall  *Hall  `db:"-"`
}
