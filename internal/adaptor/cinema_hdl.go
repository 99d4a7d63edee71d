package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CinemaHandler struct {
	service usecase.CinemaService
	log     *zap.Logger
}

func NewCinemaHandler(service usecase.CinemaService, log *zap.Logger) *CinemaHandler {
	return &CinemaHandler{
		service: service,
		log:     log.With(zap.String("handler", "cinema")),
	}
}

// GetCinemas handles GET /api/cinemas?q=
func (h *CinemaHandler) GetCinemas(w http.ResponseWriter, r *http.Request) {
	cinemas, err := h.service.GetCinemas(r.Context(), paginationFromQuery(r), queryString(r, "q"))
	if err != nil {
		writeError(w, h.log, err, "get cinemas")
		return
	}

	utils.ResponseSuccess(w, "success", cinemas)
}

// GetCinema handles GET /api/cinemas/{id}, halls included
func (h *CinemaHandler) GetCinema(w http.ResponseWriter, r *http.Request) {
	cinema, err := h.service.GetCinema(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get cinema")
		return
	}

	utils.ResponseSuccess(w, "success", cinema)
}

// ==================== ADMIN METHODS ====================

// CreateCinema handles POST /api/admin/cinemas
func (h *CinemaHandler) CreateCinema(w http.ResponseWriter, r *http.Request) {
	var req request.CinemaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "create cinema")
		return
	}

	cinema, err := h.service.CreateCinema(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create cinema")
		return
	}

	utils.ResponseCreated(w, "Cinema created successfully", cinema)
}

// UpdateCinema handles PUT /api/admin/cinemas/{id}
func (h *CinemaHandler) UpdateCinema(w http.ResponseWriter, r *http.Request) {
	var req request.CinemaUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "update cinema")
		return
	}

	cinema, err := h.service.UpdateCinema(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update cinema")
		return
	}

	utils.ResponseSuccess(w, "Cinema updated successfully", cinema)
}

// DeleteCinema handles DELETE /api/admin/cinemas/{id}
func (h *CinemaHandler) DeleteCinema(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCinema(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "delete cinema")
		return
	}

	utils.ResponseNoContent(w)
}

// CreateHall handles POST /api/admin/cinemas/{id}/halls and lays out the seat grid
func (h *CinemaHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "create hall")
		return
	}

	hall, err := h.service.CreateHall(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "create hall")
		return
	}

	utils.ResponseCreated(w, "Hall created successfully", hall)
}

// GetHall handles GET /api/admin/halls/{id}
func (h *CinemaHandler) GetHall(w http.ResponseWriter, r *http.Request) {
	hall, err := h.service.GetHall(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get hall")
		return
	}

	utils.ResponseSuccess(w, "success", hall)
}

// GetHallSeats handles GET /api/admin/halls/{id}/seats
func (h *CinemaHandler) GetHallSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.GetHallSeats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get hall seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// UpdateHall handles PUT /api/admin/halls/{id}
func (h *CinemaHandler) UpdateHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "update hall")
		return
	}

	hall, err := h.service.UpdateHall(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update hall")
		return
	}

	utils.ResponseSuccess(w, "Hall updated successfully", hall)
}

// DeleteHall handles DELETE /api/admin/halls/{id}
func (h *CinemaHandler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHall(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "delete hall")
		return
	}

	utils.ResponseNoContent(w)
}

// UpdateSeat handles PUT /api/admin/seats/{id}
func (h *CinemaHandler) UpdateSeat(w http.ResponseWriter, r *http.Request) {
	var req request.SeatUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "update seat")
		return
	}

	seat, err := h.service.UpdateSeat(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update seat")
		return
	}

	utils.ResponseSuccess(w, "Seat updated successfully", seat)
}
