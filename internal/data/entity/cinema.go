package entity

import "github.com/google/uuid"

type Cinema struct {
	Base
	TenantID     *uuid.UUID `db:"tenant_id"`
	Name         string     `db:"name"`
	Location     string     `db:"location"`
	ContactEmail *string    `db:"contact_email"`
}
