package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ActiveBookingStatuses hold their seats. Used by both the conflict check
// and the availability query.
var ActiveBookingStatuses = []string{string(BookingStatusConfirmed), string(BookingStatusPending)}

func (s BookingStatus) Active() bool {
	return s == BookingStatusConfirmed || s == BookingStatusPending
}

type Booking struct {
	Base
	TenantID         uuid.UUID       `db:"tenant_id"`
	UserID           uuid.UUID       `db:"user_id"`
	ShowtimeID       uuid.UUID       `db:"showtime_id"`
	TotalPrice       decimal.Decimal `db:"total_price"`
	Status           BookingStatus   `db:"status"`
	PaymentReference *string         `db:"payment_reference"`
	ConfirmationCode string          `db:"confirmation_code"`

	Tickets []*Ticket `db:"-"`
}
