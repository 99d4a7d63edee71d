package request

import "github.com/shopspring/decimal"

type MovieRequest struct {
	Title           string          `json:"title" validate:"required,min=1,max=255"`
	Description     *string         `json:"description,omitempty"`
	PosterURL       *string         `json:"poster_url,omitempty" validate:"omitempty,url"`
	TrailerURL      *string         `json:"trailer_url,omitempty" validate:"omitempty,url"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=1,max=999"`
	Rating          decimal.Decimal `json:"rating" validate:"gte=0,lte=10"`
	Genres          []string        `json:"genres,omitempty" validate:"omitempty,max=20,dive,required,max=50"`
	ReleaseDate     *string         `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Director        *string         `json:"director,omitempty" validate:"omitempty,max=150"`
	Writers         []string        `json:"writers,omitempty" validate:"omitempty,max=20,dive,required,max=150"`
	Status          string          `json:"status" validate:"required,oneof=draft now_showing coming_soon"`
	ContentRating   *string         `json:"content_rating,omitempty" validate:"omitempty,max=10"`
}

type MovieUpdateRequest struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description,omitempty"`
	PosterURL       *string          `json:"poster_url,omitempty" validate:"omitempty,url"`
	TrailerURL      *string          `json:"trailer_url,omitempty" validate:"omitempty,url"`
	DurationMinutes *int             `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=999"`
	Rating          *decimal.Decimal `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Genres          []string         `json:"genres,omitempty" validate:"omitempty,max=20,dive,required,max=50"`
	ReleaseDate     *string          `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Director        *string          `json:"director,omitempty" validate:"omitempty,max=150"`
	Writers         []string         `json:"writers,omitempty" validate:"omitempty,max=20,dive,required,max=150"`
	Status          *string          `json:"status,omitempty" validate:"omitempty,oneof=draft now_showing coming_soon"`
	ContentRating   *string          `json:"content_rating,omitempty" validate:"omitempty,max=10"`
}

type MovieFilterRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=draft now_showing coming_soon"`
	Query  *string `json:"q,omitempty" validate:"omitempty,max=100"`
}
