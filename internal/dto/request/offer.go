package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type OfferRequest struct {
	Title              string           `json:"title" validate:"required,min=1,max=255"`
	Description        *string          `json:"description,omitempty"`
	ImageURL           *string          `json:"image_url,omitempty" validate:"omitempty,url"`
	DiscountCode       *string          `json:"discount_code,omitempty" validate:"omitempty,max=50"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	ExpiresAt          *time.Time       `json:"expires_at,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
}

type OfferUpdateRequest struct {
	Title              *string          `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description        *string          `json:"description,omitempty"`
	ImageURL           *string          `json:"image_url,omitempty" validate:"omitempty,url"`
	DiscountCode       *string          `json:"discount_code,omitempty" validate:"omitempty,max=50"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	ExpiresAt          *time.Time       `json:"expires_at,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
}
