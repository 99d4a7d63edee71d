package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const SeatTypeStandard = "standard"

type SeatType struct {
	Base
	TenantID        uuid.UUID       `db:"tenant_id"`
	Name            string          `db:"name"`
	PriceMultiplier decimal.Decimal `db:"price_multiplier"`
}
