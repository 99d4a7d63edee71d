package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Offer struct {
	Base
	Title              string           `db:"title"`
	Slug               string           `db:"slug"`
	Description        *string          `db:"description"`
	ImageURL           *string          `db:"image_url"`
	DiscountCode       *string          `db:"discount_code"`
	DiscountPercentage *decimal.Decimal `db:"discount_percentage"`
	ExpiresAt          *time.Time       `db:"expires_at"`
	IsActive           bool             `db:"is_active"`
}

// Available reports whether the offer is shown publicly at t.
func (o *Offer) Available(t time.Time) bool {
	return o.IsActive && (o.ExpiresAt == nil || o.ExpiresAt.After(t))
}
