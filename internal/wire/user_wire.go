package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g guards) {
	// ==================== ADMIN ROUTES ====================
	r.With(g.auth, g.admin).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetUsers)          // GET /api/admin/users?page=1&per_page=10
		r.Post("/", userHandler.CreateUser)       // POST /api/admin/users
		r.Get("/{id}", userHandler.GetUser)       // GET /api/admin/users/{id}
		r.Put("/{id}", userHandler.UpdateUser)    // PUT /api/admin/users/{id}
		r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/admin/users/{id}
	})
}
