package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovieStatus string

const (
	MovieStatusDraft      MovieStatus = "draft"
	MovieStatusNowShowing MovieStatus = "now_showing"
	MovieStatusComingSoon MovieStatus = "coming_soon"
)

// Published reports whether the movie is visible in the public catalog.
func (s MovieStatus) Published() bool {
	return s == MovieStatusNowShowing || s == MovieStatusComingSoon
}

type Movie struct {
	Base
	Title           string          `db:"title"`
	Slug            string          `db:"slug"`
	Description     *string         `db:"description"`
	PosterURL       *string         `db:"poster_url"`
	TrailerURL      *string         `db:"trailer_url"`
	DurationMinutes int             `db:"duration_minutes"`
	Rating          decimal.Decimal `db:"rating"`
	Genres          []string        `db:"genres"`
	ReleaseDate     *time.Time      `db:"release_date"`
	Director        *string         `db:"director"`
	Writers         []string        `db:"writers"`
	Status          MovieStatus     `db:"status"`
	ContentRating   *string         `db:"content_rating"`
}
