package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ShowtimeResponse struct {
	ID          string                     `json:"id"`
	MovieID     string                     `json:"movie_id"`
	HallID      string                     `json:"hall_id"`
	StartsAt    time.Time                  `json:"starts_at"`
	EndsAt      time.Time                  `json:"ends_at"`
	PriceMatrix map[string]decimal.Decimal `json:"price_matrix"`
	Movie       *MovieResponse             `json:"movie,omitempty"`
	Hall        *HallResponse              `json:"hall,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// ShowtimeAvailabilityResponse is the seat map for a showtime: the hall's
// seats plus the ids held by active bookings.
type ShowtimeAvailabilityResponse struct {
	Showtime    ShowtimeResponse `json:"showtime"`
	BookedSeats []string         `json:"booked_seats"`
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	matrix := map[string]decimal.Decimal(showtime.PriceMatrix)
	if matrix == nil {
		matrix = map[string]decimal.Decimal{}
	}

	resp := ShowtimeResponse{
		ID:          showtime.ID.String(),
		MovieID:     showtime.MovieID.String(),
		HallID:      showtime.HallID.String(),
		StartsAt:    showtime.StartsAt,
		EndsAt:      showtime.EndsAt,
		PriceMatrix: matrix,
		CreatedAt:   showtime.CreatedAt,
		UpdatedAt:   showtime.UpdatedAt,
	}
	if showtime.Movie != nil {
		movie := MovieToResponse(showtime.Movie)
		resp.Movie = &movie
	}
	if showtime.Hall != nil {
		hall := HallToResponse(showtime.Hall)
		resp.Hall = &hall
	}
	return resp
}

func ShowtimesToResponse(showtimes []*entity.Showtime) []ShowtimeResponse {
	return mapSlice(showtimes, ShowtimeToResponse)
}
