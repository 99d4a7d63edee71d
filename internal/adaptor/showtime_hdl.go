package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetShowtime handles GET /api/showtimes/{id} and returns the seat map with
// the seats already booked.
func (h *ShowtimeHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	showtime, err := h.service.GetShowtime(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// GetMovieShowtimes handles GET /api/movies/{id}/showtimes?from=
func (h *ShowtimeHandler) GetMovieShowtimes(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "from")
	if err != nil {
		writeError(w, h.log, err, "get movie showtimes")
		return
	}

	showtimes, err := h.service.GetMovieShowtimes(r.Context(), chi.URLParam(r, "id"), from)
	if err != nil {
		writeError(w, h.log, err, "get movie showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// ==================== ADMIN METHODS ====================

// GetShowtimes handles GET /api/admin/showtimes?movie_id=&hall_id=&from=&to=
func (h *ShowtimeHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	filter := &request.ShowtimeFilterRequest{
		MovieID: queryString(r, "movie_id"),
		HallID:  queryString(r, "hall_id"),
	}

	var err error
	if filter.From, err = queryTime(r, "from"); err != nil {
		writeError(w, h.log, err, "get showtimes")
		return
	}
	if filter.To, err = queryTime(r, "to"); err != nil {
		writeError(w, h.log, err, "get showtimes")
		return
	}

	showtimes, err := h.service.GetShowtimes(r.Context(), paginationFromQuery(r), filter)
	if err != nil {
		writeError(w, h.log, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// CreateShowtime handles POST /api/admin/showtimes
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "create showtime")
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime created successfully", showtime)
}

// UpdateShowtime handles PUT /api/admin/showtimes/{id}
func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "update showtime")
		return
	}

	showtime, err := h.service.UpdateShowtime(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime updated successfully", showtime)
}

// DeleteShowtime handles DELETE /api/admin/showtimes/{id}
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteShowtime(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseNoContent(w)
}

// GetShowtimeTickets handles GET /api/admin/showtimes/{id}/tickets
func (h *ShowtimeHandler) GetShowtimeTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.service.GetShowtimeTickets(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get showtime tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}
