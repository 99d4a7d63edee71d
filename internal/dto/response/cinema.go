package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CinemaResponse struct {
	ID           string    `json:"id"`
	TenantID     *string   `json:"tenant_id,omitempty"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CinemaDetailResponse struct {
	CinemaResponse
	Halls []HallResponse `json:"halls"`
}

type HallResponse struct {
	ID       string          `json:"id"`
	CinemaID string          `json:"cinema_id"`
	Name     string          `json:"name"`
	Capacity int             `json:"capacity"`
	Rows     int             `json:"rows"`
	Columns  int             `json:"columns"`
	Cinema   *CinemaResponse `json:"cinema,omitempty"`
	Seats    []SeatResponse  `json:"seats,omitempty"`
}

type SeatResponse struct {
	ID         string            `json:"id"`
	HallID     string            `json:"hall_id"`
	Label      string            `json:"label"`
	RowLabel   string            `json:"row_label"`
	SeatNumber int               `json:"seat_number"`
	Status     entity.SeatStatus `json:"status"`
	SeatType   *SeatTypeResponse `json:"seat_type,omitempty"`
}

type SeatTypeResponse struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id,omitempty"`
	Name            string          `json:"name"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
}

type TenantResponse struct {
	ID                 string                    `json:"id"`
	Name               string                    `json:"name"`
	Domain             *string                   `json:"domain,omitempty"`
	SubscriptionStatus entity.SubscriptionStatus `json:"subscription_status"`
	Config             map[string]any            `json:"config"`
	IsDefault          bool                      `json:"is_default"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

func CinemaToResponse(cinema *entity.Cinema) CinemaResponse {
	resp := CinemaResponse{
		ID:           cinema.ID.String(),
		Name:         cinema.Name,
		Location:     cinema.Location,
		ContactEmail: cinema.ContactEmail,
		CreatedAt:    cinema.CreatedAt,
		UpdatedAt:    cinema.UpdatedAt,
	}
	if cinema.TenantID != nil {
		tenantID := cinema.TenantID.String()
		resp.TenantID = &tenantID
	}
	return resp
}

func CinemasToResponse(cinemas []*entity.Cinema) []CinemaResponse {
	return mapSlice(cinemas, CinemaToResponse)
}

func CinemaToDetailResponse(cinema *entity.Cinema, halls []*entity.Hall) CinemaDetailResponse {
	return CinemaDetailResponse{
		CinemaResponse: CinemaToResponse(cinema),
		Halls:          mapSlice(halls, HallToResponse),
	}
}

func HallToResponse(hall *entity.Hall) HallResponse {
	resp := HallResponse{
		ID:       hall.ID.String(),
		CinemaID: hall.CinemaID.String(),
		Name:     hall.Name,
		Capacity: hall.Capacity,
		Rows:     hall.Rows,
		Columns:  hall.Columns,
	}
	if hall.Cinema != nil {
		cinema := CinemaToResponse(hall.Cinema)
		resp.Cinema = &cinema
	}
	if hall.Seats != nil {
		resp.Seats = SeatsToResponse(hall.Seats)
	}
	return resp
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	resp := SeatResponse{
		ID:         seat.ID.String(),
		HallID:     seat.HallID.String(),
		Label:      seat.Label(),
		RowLabel:   seat.RowLabel,
		SeatNumber: seat.SeatNumber,
		Status:     seat.Status,
	}
	if seat.SeatType != nil {
		seatType := SeatTypeToResponse(seat.SeatType)
		resp.SeatType = &seatType
	}
	return resp
}

func SeatsToResponse(seats []*entity.Seat) []SeatResponse {
	return mapSlice(seats, SeatToResponse)
}

func SeatTypeToResponse(seatType *entity.SeatType) SeatTypeResponse {
	resp := SeatTypeResponse{
		ID:              seatType.ID.String(),
		Name:            seatType.Name,
		PriceMultiplier: seatType.PriceMultiplier,
	}
	if seatType.TenantID != uuid.Nil {
		resp.TenantID = seatType.TenantID.String()
	}
	return resp
}

func SeatTypesToResponse(seatTypes []*entity.SeatType) []SeatTypeResponse {
	return mapSlice(seatTypes, SeatTypeToResponse)
}

func TenantToResponse(tenant *entity.Tenant) TenantResponse {
	config := tenant.Config
	if config == nil {
		config = map[string]any{}
	}
	return TenantResponse{
		ID:                 tenant.ID.String(),
		Name:               tenant.Name,
		Domain:             tenant.Domain,
		SubscriptionStatus: tenant.SubscriptionStatus,
		Config:             config,
		IsDefault:          tenant.IsDefault,
		CreatedAt:          tenant.CreatedAt,
		UpdatedAt:          tenant.UpdatedAt,
	}
}

func TenantsToResponse(tenants []*entity.Tenant) []TenantResponse {
	return mapSlice(tenants, TenantToResponse)
}
