package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TenantHandler serves tenants and seat types. Admin only.
type TenantHandler struct {
	service usecase.TenantService
	log     *zap.Logger
}

func NewTenantHandler(service usecase.TenantService, log *zap.Logger) *TenantHandler {
	return &TenantHandler{
		service: service,
		log:     log.With(zap.String("handler", "tenant")),
	}
}

func (h *TenantHandler) GetTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.service.GetTenants(r.Context(), paginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "get tenants")
		return
	}

	utils.ResponseSuccess(w, "success", tenants)
}

func (h *TenantHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.service.GetTenant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get tenant")
		return
	}

	utils.ResponseSuccess(w, "success", tenant)
}

func (h *TenantHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req request.TenantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "create tenant")
		return
	}

	tenant, err := h.service.CreateTenant(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create tenant")
		return
	}

	utils.ResponseCreated(w, "Tenant created successfully", tenant)
}

func (h *TenantHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var req request.TenantUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "update tenant")
		return
	}

	tenant, err := h.service.UpdateTenant(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update tenant")
		return
	}

	utils.ResponseSuccess(w, "Tenant updated successfully", tenant)
}

// GetSeatTypes handles GET /api/admin/seat-types?tenant_id=
func (h *TenantHandler) GetSeatTypes(w http.ResponseWriter, r *http.Request) {
	seatTypes, err := h.service.GetSeatTypes(r.Context(), paginationFromQuery(r), queryString(r, "tenant_id"))
	if err != nil {
		writeError(w, h.log, err, "get seat types")
		return
	}

	utils.ResponseSuccess(w, "success", seatTypes)
}

func (h *TenantHandler) GetSeatType(w http.ResponseWriter, r *http.Request) {
	seatType, err := h.service.GetSeatType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get seat type")
		return
	}

	utils.ResponseSuccess(w, "success", seatType)
}

func (h *TenantHandler) CreateSeatType(w http.ResponseWriter, r *http.Request) {
	var req request.SeatTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "create seat type")
		return
	}

	seatType, err := h.service.CreateSeatType(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create seat type")
		return
	}

	utils.ResponseCreated(w, "Seat type created successfully", seatType)
}

func (h *TenantHandler) UpdateSeatType(w http.ResponseWriter, r *http.Request) {
	var req request.SeatTypeUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err, "update seat type")
		return
	}

	seatType, err := h.service.UpdateSeatType(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update seat type")
		return
	}

	utils.ResponseSuccess(w, "Seat type updated successfully", seatType)
}

func (h *TenantHandler) DeleteSeatType(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSeatType(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "delete seat type")
		return
	}

	utils.ResponseNoContent(w)
}
