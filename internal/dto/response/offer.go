package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type OfferResponse struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Slug               string           `json:"slug"`
	Description        *string          `json:"description,omitempty"`
	ImageURL           *string          `json:"image_url,omitempty"`
	DiscountCode       *string          `json:"discount_code,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	ExpiresAt          *time.Time       `json:"expires_at,omitempty"`
	IsActive           bool             `json:"is_active"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func OfferToResponse(offer *entity.Offer) OfferResponse {
	return OfferResponse{
		ID:                 offer.ID.String(),
		Title:              offer.Title,
		Slug:               offer.Slug,
		Description:        offer.Description,
		ImageURL:           offer.ImageURL,
		DiscountCode:       offer.DiscountCode,
		DiscountPercentage: offer.DiscountPercentage,
		ExpiresAt:          offer.ExpiresAt,
		IsActive:           offer.IsActive,
		CreatedAt:          offer.CreatedAt,
		UpdatedAt:          offer.UpdatedAt,
	}
}

func OffersToResponse(offers []*entity.Offer) []OfferResponse {
	return mapSlice(offers, OfferToResponse)
}
