package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OfferHandler struct {
	service usecase.OfferService
	log     *zap.Logger
}

func NewOfferHandler(service usecase.OfferService, log *zap.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		log:     log.With(zap.String("handler", "offer")),
	}
}

// GetOffers handles GET /api/offers, active and unexpired only
func (h *OfferHandler) GetOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.GetOffers(r.Context(), paginationFromQuery(r), true)
	if err != nil {
		writeError(w, h.log, err, "get offers")
		return
	}

	utils.ResponseSuccess(w, "success", offers)
}

// GetOffer handles GET /api/offers/{id} where id may also be a slug
func (h *OfferHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.service.GetOffer(r.Context(), chi.URLParam(r, "id"), true)
	if err != nil {
		writeError(w, h.log, err, "get offer")
		return
	}

	utils.ResponseSuccess(w, "success", offer)
}

// ==================== ADMIN METHODS ====================

func (h *OfferHandler) AdminGetOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.GetOffers(r.Context(), paginationFromQuery(r), false)
	if err != nil {
		writeError(w, h.log, err, "get offers")
		return
	}

	utils.ResponseSuccess(w, "success", offers)
}

func (h *OfferHandler) AdminGetOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.service.GetOffer(r.Context(), chi.URLParam(r, "id"), false)
	if err != nil {
		writeError(w, h.log, err, "get offer")
		return
	}

	utils.ResponseSuccess(w, "success", offer)
}

func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req request.OfferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "create offer")
		return
	}

	offer, err := h.service.CreateOffer(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create offer")
		return
	}

	utils.ResponseCreated(w, "Offer created successfully", offer)
}

func (h *OfferHandler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	var req request.OfferUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "update offer")
		return
	}

	offer, err := h.service.UpdateOffer(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update offer")
		return
	}

	utils.ResponseSuccess(w, "Offer updated successfully", offer)
}

func (h *OfferHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOffer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "delete offer")
		return
	}

	utils.ResponseNoContent(w)
}
