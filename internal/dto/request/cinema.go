package request

type CinemaRequest struct {
	TenantID     *string `json:"tenant_id,omitempty" validate:"omitempty,uuid"`
	Name         string  `json:"name" validate:"required,min=1,max=150"`
	Location     string  `json:"location" validate:"required,min=1,max=255"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email,max=255"`
}

type CinemaUpdateRequest struct {
	TenantID     *string `json:"tenant_id,omitempty" validate:"omitempty,uuid"`
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Location     *string `json:"location,omitempty" validate:"omitempty,min=1,max=255"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email,max=255"`
}

// HallRequest creates a hall with a rows x columns seat grid.
type HallRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	Rows       int     `json:"rows" validate:"required,min=1,max=52"`
	Columns    int     `json:"columns" validate:"required,min=1,max=100"`
	SeatTypeID *string `json:"seat_type_id,omitempty" validate:"omitempty,uuid"`
}

type HallUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=0"`
}

type SeatUpdateRequest struct {
	SeatTypeID *string `json:"seat_type_id,omitempty" validate:"omitempty,uuid"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=available blocked"`
}
