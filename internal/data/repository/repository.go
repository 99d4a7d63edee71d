package repository

import (
	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tenant   TenantRepository
	User     UserRepository
	Session  SessionRepository
	Cinema   CinemaRepository
	Hall     HallRepository
	Seat     SeatRepository
	SeatType SeatTypeRepository
	Movie    MovieRepository
	Showtime ShowtimeRepository
	Booking  BookingRepository
	Ticket   TicketRepository
	Offer    OfferRepository
	Contact  ContactRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tenant:   NewTenantRepository(db, log),
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Cinema:   NewCinemaRepository(db, log),
		Hall:     NewHallRepository(db, log),
		Seat:     NewSeatRepository(db, log),
		SeatType: NewSeatTypeRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Showtime: NewShowtimeRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Ticket:   NewTicketRepository(db, log),
		Offer:    NewOfferRepository(db, log),
		Contact:  NewContactRepository(db, log),
	}
}
