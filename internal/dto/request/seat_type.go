package request

import "github.com/shopspring/decimal"

type SeatTypeRequest struct {
	TenantID        *string         `json:"tenant_id,omitempty" validate:"omitempty,uuid"`
	Name            string          `json:"name" validate:"required,min=1,max=50"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier" validate:"gt=0,lte=99"`
}

type SeatTypeUpdateRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	PriceMultiplier *decimal.Decimal `json:"price_multiplier,omitempty" validate:"omitempty,gt=0,lte=99"`
}
