package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCatalog routes offers, tenants and seat types.
func wireCatalog(r chi.Router, tenantHandler *adaptor.TenantHandler, offerHandler *adaptor.OfferHandler, g guards) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/offers", offerHandler.GetOffers)
	r.Get("/api/offers/{id}", offerHandler.GetOffer)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Route("/api/admin/offers", func(r chi.Router) {
			r.Get("/", offerHandler.AdminGetOffers)
			r.Post("/", offerHandler.CreateOffer)
			r.Get("/{id}", offerHandler.AdminGetOffer)
			r.Put("/{id}", offerHandler.UpdateOffer)
			r.Delete("/{id}", offerHandler.DeleteOffer)
		})

		r.Route("/api/admin/tenants", func(r chi.Router) {
			r.Get("/", tenantHandler.GetTenants)
			r.Post("/", tenantHandler.CreateTenant)
			r.Get("/{id}", tenantHandler.GetTenant)
			r.Put("/{id}", tenantHandler.UpdateTenant)
		})

		r.Route("/api/admin/seat-types", func(r chi.Router) {
			r.Get("/", tenantHandler.GetSeatTypes)
			r.Post("/", tenantHandler.CreateSeatType)
			r.Get("/{id}", tenantHandler.GetSeatType)
			r.Put("/{id}", tenantHandler.UpdateSeatType)
			r.Delete("/{id}", tenantHandler.DeleteSeatType)
		})
	})
}
