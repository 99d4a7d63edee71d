package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type MovieResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Slug            string             `json:"slug"`
	Description     *string            `json:"description,omitempty"`
	PosterURL       *string            `json:"poster_url,omitempty"`
	TrailerURL      *string            `json:"trailer_url,omitempty"`
	DurationMinutes int                `json:"duration_minutes"`
	Rating          decimal.Decimal    `json:"rating"`
	Genres          []string           `json:"genres"`
	ReleaseDate     *string            `json:"release_date,omitempty"`
	Director        *string            `json:"director,omitempty"`
	Writers         []string           `json:"writers"`
	Status          entity.MovieStatus `json:"status"`
	ContentRating   *string            `json:"content_rating,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	resp := MovieResponse{
		ID:              movie.ID.String(),
		Title:           movie.Title,
		Slug:            movie.Slug,
		Description:     movie.Description,
		PosterURL:       movie.PosterURL,
		TrailerURL:      movie.TrailerURL,
		DurationMinutes: movie.DurationMinutes,
		Rating:          movie.Rating,
		Genres:          nonNilStrings(movie.Genres),
		Director:        movie.Director,
		Writers:         nonNilStrings(movie.Writers),
		Status:          movie.Status,
		ContentRating:   movie.ContentRating,
		CreatedAt:       movie.CreatedAt,
		UpdatedAt:       movie.UpdatedAt,
	}
	if movie.ReleaseDate != nil {
		date := movie.ReleaseDate.Format(time.DateOnly)
		resp.ReleaseDate = &date
	}
	return resp
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	return mapSlice(movies, MovieToResponse)
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
