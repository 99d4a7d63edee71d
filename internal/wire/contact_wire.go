package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireContact(r chi.Router, contactHandler *adaptor.ContactHandler, g guards) {
	r.With(g.auth).Post("/api/contact", contactHandler.SubmitContact)

	r.Route("/api/admin/contacts", func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Get("/", contactHandler.GetContacts)
		r.Get("/{id}", contactHandler.GetContact)
		r.Put("/{id}/status", contactHandler.UpdateContactStatus)
		r.Delete("/{id}", contactHandler.DeleteContact)
	})
}
