package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID               string               `json:"id"`
	TenantID         string               `json:"tenant_id"`
	UserID           string               `json:"user_id"`
	ShowtimeID       string               `json:"showtime_id"`
	TotalPrice       decimal.Decimal      `json:"total_price"`
	Status           entity.BookingStatus `json:"status"`
	PaymentReference *string              `json:"payment_reference,omitempty"`
	ConfirmationCode string               `json:"confirmation_code"`
	Tickets          []TicketResponse     `json:"tickets"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

type TicketResponse struct {
	ID     string              `json:"id"`
	SeatID string              `json:"seat_id"`
	Price  decimal.Decimal     `json:"price"`
	Status entity.TicketStatus `json:"status"`
	Seat   *SeatResponse       `json:"seat,omitempty"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:               booking.ID.String(),
		TenantID:         booking.TenantID.String(),
		UserID:           booking.UserID.String(),
		ShowtimeID:       booking.ShowtimeID.String(),
		TotalPrice:       booking.TotalPrice,
		Status:           booking.Status,
		PaymentReference: booking.PaymentReference,
		ConfirmationCode: booking.ConfirmationCode,
		Tickets:          mapSlice(booking.Tickets, TicketToResponse),
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	return mapSlice(bookings, BookingToResponse)
}

func TicketToResponse(ticket *entity.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:     ticket.ID.String(),
		SeatID: ticket.SeatID.String(),
		Price:  ticket.Price,
		Status: ticket.Status,
	}
	if ticket.Seat != nil {
		seat := SeatToResponse(ticket.Seat)
		resp.Seat = &seat
	}
	return resp
}

func TicketsToResponse(tickets []*entity.Ticket) []TicketResponse {
	return mapSlice(tickets, TicketToResponse)
}

// SeatIDsToStrings renders seat ids for the booked_seats list.
func SeatIDsToStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
