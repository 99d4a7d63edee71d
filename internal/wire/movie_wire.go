package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, showtimeHandler *adaptor.ShowtimeHandler, g guards) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/{id}", movieHandler.GetMovie)
	r.Get("/api/movies/{id}/showtimes", showtimeHandler.GetMovieShowtimes)

	// seat map with booked seats
	r.Get("/api/showtimes/{id}", showtimeHandler.GetShowtime)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Get("/", movieHandler.AdminGetMovies)
		r.Post("/", movieHandler.CreateMovie)
		r.Get("/{id}", movieHandler.AdminGetMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})

	r.Route("/api/admin/showtimes", func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Get("/", showtimeHandler.GetShowtimes)
		r.Post("/", showtimeHandler.CreateShowtime)
		r.Put("/{id}", showtimeHandler.UpdateShowtime)
		r.Delete("/{id}", showtimeHandler.DeleteShowtime)
		r.Get("/{id}/tickets", showtimeHandler.GetShowtimeTickets)
	})
}
