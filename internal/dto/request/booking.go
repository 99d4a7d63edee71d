package request

type CreateBookingRequest struct {
	ShowtimeID string   `json:"showtime_id" validate:"required,uuid"`
	SeatIDs    []string `json:"seat_ids" validate:"required,min=1,max=50,unique,dive,uuid"`
}

type BookingFilterRequest struct {
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled"`
	ShowtimeID *string `json:"showtime_id,omitempty" validate:"omitempty,uuid"`
}
