package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ContactHandler struct {
	service usecase.ContactService
	log     *zap.Logger
}

func NewContactHandler(service usecase.ContactService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log.With(zap.String("handler", "contact")),
	}
}

// SubmitContact handles POST /api/contact (protected)
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "submit contact")
		return
	}

	contact, err := h.service.SubmitContact(r.Context(), &userID, &req)
	if err != nil {
		writeError(w, h.log, err, "submit contact")
		return
	}

	utils.ResponseCreated(w, "Message received", contact)
}

// ==================== ADMIN METHODS ====================

// GetContacts handles GET /api/admin/contacts?status=unread
func (h *ContactHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.GetContacts(r.Context(), paginationFromQuery(r), queryString(r, "status"))
	if err != nil {
		writeError(w, h.log, err, "get contacts")
		return
	}

	utils.ResponseSuccess(w, "success", contacts)
}

func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.service.GetContact(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get contact")
		return
	}

	utils.ResponseSuccess(w, "success", contact)
}

// UpdateContactStatus handles PUT /api/admin/contacts/{id}/status
func (h *ContactHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	var req request.ContactStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "update contact status")
		return
	}

	contact, err := h.service.UpdateContactStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update contact status")
		return
	}

	utils.ResponseSuccess(w, "Contact updated successfully", contact)
}

func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "delete contact")
		return
	}

	utils.ResponseNoContent(w)
}
