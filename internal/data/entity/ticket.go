package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketStatusValid TicketStatus = "valid"
	TicketStatusVoid  TicketStatus = "void"
)

type Ticket struct {
	BaseSimple
	BookingID  uuid.UUID       `db:"booking_id"`
	ShowtimeID uuid.UUID       `db:"showtime_id"`
	SeatID     uuid.UUID       `db:"seat_id"`
	Price      decimal.Decimal `db:"price"`
	Status     TicketStatus    `db:"status"`

	Seat *Seat `db:"-"`
}
