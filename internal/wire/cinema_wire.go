package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCinema(r chi.Router, cinemaHandler *adaptor.CinemaHandler, g guards) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/cinemas", cinemaHandler.GetCinemas)
	r.Get("/api/cinemas/{id}", cinemaHandler.GetCinema)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Route("/api/admin/cinemas", func(r chi.Router) {
			r.Get("/", cinemaHandler.GetCinemas)
			r.Post("/", cinemaHandler.CreateCinema)
			r.Get("/{id}", cinemaHandler.GetCinema)
			r.Put("/{id}", cinemaHandler.UpdateCinema)
			r.Delete("/{id}", cinemaHandler.DeleteCinema)
			r.Post("/{id}/halls", cinemaHandler.CreateHall)
		})

		r.Route("/api/admin/halls", func(r chi.Router) {
			r.Get("/{id}", cinemaHandler.GetHall)
			r.Put("/{id}", cinemaHandler.UpdateHall)
			r.Delete("/{id}", cinemaHandler.DeleteHall)
			r.Get("/{id}/seats", cinemaHandler.GetHallSeats)
		})

		r.Put("/api/admin/seats/{id}", cinemaHandler.UpdateSeat)
	})
}
