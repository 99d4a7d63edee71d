package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShowtimeRequest struct {
	MovieID  string     `json:"movie_id" validate:"required,uuid"`
	HallID   string     `json:"hall_id" validate:"required,uuid"`
	StartsAt time.Time  `json:"starts_at" validate:"required"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	// PriceMatrix maps seat type names to ticket prices.
	PriceMatrix map[string]decimal.Decimal `json:"price_matrix,omitempty"`
}

type ShowtimeUpdateRequest struct {
	MovieID     *string                    `json:"movie_id,omitempty" validate:"omitempty,uuid"`
	HallID      *string                    `json:"hall_id,omitempty" validate:"omitempty,uuid"`
	StartsAt    *time.Time                 `json:"starts_at,omitempty"`
	EndsAt      *time.Time                 `json:"ends_at,omitempty"`
	PriceMatrix map[string]decimal.Decimal `json:"price_matrix,omitempty"`
}

type ShowtimeFilterRequest struct {
	MovieID *string    `json:"movie_id,omitempty" validate:"omitempty,uuid"`
	HallID  *string    `json:"hall_id,omitempty" validate:"omitempty,uuid"`
	From    *time.Time `json:"from,omitempty"`
	To      *time.Time `json:"to,omitempty"`
}
