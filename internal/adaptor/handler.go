package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Tenant   *TenantHandler
	Cinema   *CinemaHandler
	Movie    *MovieHandler
	Showtime *ShowtimeHandler
	Booking  *BookingHandler
	Offer    *OfferHandler
	Contact  *ContactHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Tenant:   NewTenantHandler(service.Tenant, log),
		Cinema:   NewCinemaHandler(service.Cinema, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Offer:    NewOfferHandler(service.Offer, log),
		Contact:  NewContactHandler(service.Contact, log),
	}
}

// writeError maps service errors to the response envelope.
func writeError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		validationErr *utils.ValidationError
		conflictErr   *utils.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		var fields any
		if len(validationErr.Fields) > 0 {
			fields = validationErr.Fields
		}
		utils.ResponseUnprocessable(w, validationErr.Message, fields)

	case errors.As(err, &conflictErr):
		log.Warn(operation+" conflict", zap.Error(err))
		utils.ResponseUnprocessable(w, conflictErr.Message, conflictErr.Details)

	case errors.Is(err, utils.ErrConflict):
		log.Warn(operation+" conflict", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), nil)

	case errors.Is(err, utils.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, utils.ErrUnauthorized):
		log.Warn(operation+" unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, utils.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeJSON reads the body into dst. An empty body leaves dst untouched so
// the validator reports the missing fields.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return utils.Invalid("invalid request body")
	}
	return nil
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), utils.DefaultPerPage),
	)
}

func queryString(r *http.Request, key string) *string {
	return utils.OptionalString(r.URL.Query().Get(key))
}

// queryTime accepts RFC 3339 timestamps or plain dates.
func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := queryString(r, key)
	if raw == nil {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t, nil
		}
	}
	return nil, utils.NewValidationError("validation failed", map[string]string{
		key: "Must be an RFC 3339 timestamp or a YYYY-MM-DD date",
	})
}
