package usecase

import (
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Tenant   TenantService
	Cinema   CinemaService
	Movie    MovieService
	Showtime ShowtimeService
	Booking  BookingService
	Offer    OfferService
	Contact  ContactService
}

func NewService(repo *repository.Repository, config *utils.Config, notifier Notifier, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo.User, repo.Session, log),
		Tenant:   NewTenantService(repo, log),
		Cinema:   NewCinemaService(repo, log),
		Movie:    NewMovieService(repo, notifier, log),
		Showtime: NewShowtimeService(repo, log),
		Booking:  NewBookingService(repo, config.Booking, log),
		Offer:    NewOfferService(repo, log),
		Contact:  NewContactService(repo, notifier, log),
	}
}
