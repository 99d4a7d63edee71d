package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	// GetShowtime returns the seat map: showtime, movie, hall with all seats
	// and the ids of seats held by active bookings.
	GetShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeAvailabilityResponse, error)
	GetMovieShowtimes(ctx context.Context, movieID string, from *time.Time) ([]response.ShowtimeResponse, error)

	// Admin
	GetShowtimes(ctx context.Context, req *request.PaginatedRequest, filter *request.ShowtimeFilterRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error)
	CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, showtimeID string, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID string) error
	// GetShowtimeTickets is the door list: every ticket issued, void ones included.
	GetShowtimeTickets(ctx context.Context, showtimeID string) ([]response.TicketResponse, error)
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) GetShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeAvailabilityResponse, error) {
	id, err := parseID(showtimeID, "showtime")
	if err != nil {
		return nil, err
	}

	showtime, err := s.repo.Showtime.FindDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime %s: %w", id, err)
	}
	if showtime == nil {
		return nil, utils.NotFound("showtime")
	}

	seats, err := s.repo.Seat.FindByHallID(ctx, showtime.HallID)
	if err != nil {
		return nil, fmt.Errorf("get seats of hall %s: %w", showtime.HallID, err)
	}
	if showtime.Hall == nil {
		showtime.Hall = &entity.Hall{Base: entity.Base{ID: showtime.HallID}}
	}
	showtime.Hall.Seats = seats
	if showtime.Hall.Seats == nil {
		showtime.Hall.Seats = []*entity.Seat{}
	}

	booked, err := s.repo.Booking.FindBookedSeatIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booked seats of showtime %s: %w", id, err)
	}

	return &response.ShowtimeAvailabilityResponse{
		Showtime:    response.ShowtimeToResponse(showtime),
		BookedSeats: response.SeatIDsToStrings(booked),
	}, nil
}

func (s *showtimeService) GetMovieShowtimes(ctx context.Context, movieID string, from *time.Time) ([]response.ShowtimeResponse, error) {
	id, err := parseID(movieID, "movie")
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", id, err)
	}
	if movie == nil || !movie.Status.Published() {
		return nil, utils.NotFound("movie")
	}

	since := time.Now().UTC()
	if from != nil {
		since = *from
	}

	showtimes, err := s.repo.Showtime.FindByMovieID(ctx, id, since)
	if err != nil {
		return nil, fmt.Errorf("get showtimes of movie %s: %w", id, err)
	}

	return response.ShowtimesToResponse(showtimes), nil
}

func (s *showtimeService) GetShowtimes(ctx context.Context, req *request.PaginatedRequest, filter *request.ShowtimeFilterRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	var repoFilter repository.ShowtimeFilter
	if filter != nil {
		if err := utils.Validate(filter); err != nil {
			return nil, err
		}
		var err error
		if repoFilter.MovieID, err = parseOptionalID(filter.MovieID, "movie_id"); err != nil {
			return nil, err
		}
		if repoFilter.HallID, err = parseOptionalID(filter.HallID, "hall_id"); err != nil {
			return nil, err
		}
		repoFilter.From = filter.From
		repoFilter.To = filter.To
	}

	showtimes, err := s.repo.Showtime.FindAll(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	total, err := s.repo.Showtime.CountAll(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("count showtimes: %w", err)
	}

	return response.NewPaginatedResponse(response.ShowtimesToResponse(showtimes), req.Page, req.Limit(), total), nil
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	movieID, err := parseFieldID(req.MovieID, "movie_id")
	if err != nil {
		return nil, err
	}
	hallID, err := parseFieldID(req.HallID, "hall_id")
	if err != nil {
		return nil, err
	}

	showtime := &entity.Showtime{
		Base:        entity.NewBase(),
		MovieID:     movieID,
		HallID:      hallID,
		StartsAt:    req.StartsAt.UTC(),
		PriceMatrix: entity.PriceMatrix(req.PriceMatrix),
	}

	movie, err := s.checkReferences(ctx, movieID, hallID)
	if err != nil {
		return nil, err
	}

	if req.EndsAt != nil {
		showtime.EndsAt = req.EndsAt.UTC()
	} else {
		showtime.EndsAt = showtime.StartsAt.Add(time.Duration(movie.DurationMinutes) * time.Minute)
	}

	if err := s.checkSchedule(ctx, showtime, nil); err != nil {
		return nil, err
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.String("hall_id", hallID.String()),
		zap.Time("starts_at", showtime.StartsAt),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, showtimeID string, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	id, err := parseID(showtimeID, "showtime")
	if err != nil {
		return nil, err
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime %s: %w", id, err)
	}
	if showtime == nil {
		return nil, utils.NotFound("showtime")
	}

	if req.MovieID != nil {
		if showtime.MovieID, err = parseFieldID(*req.MovieID, "movie_id"); err != nil {
			return nil, err
		}
	}
	if req.HallID != nil {
		hallID, err := parseFieldID(*req.HallID, "hall_id")
		if err != nil {
			return nil, err
		}
		if hallID != showtime.HallID {
			booked, err := s.repo.Booking.FindBookedSeatIDs(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("get booked seats of showtime %s: %w", id, err)
			}
			if len(booked) > 0 {
				return nil, repository.HallHasBookingsError()
			}
		}
		showtime.HallID = hallID
	}

	movie, err := s.checkReferences(ctx, showtime.MovieID, showtime.HallID)
	if err != nil {
		return nil, err
	}

	if req.StartsAt != nil {
		length := showtime.EndsAt.Sub(showtime.StartsAt)
		showtime.StartsAt = req.StartsAt.UTC()
		if req.EndsAt == nil {
			if length <= 0 {
				length = time.Duration(movie.DurationMinutes) * time.Minute
			}
			showtime.EndsAt = showtime.StartsAt.Add(length)
		}
	}
	if req.EndsAt != nil {
		showtime.EndsAt = req.EndsAt.UTC()
	}
	if req.PriceMatrix != nil {
		showtime.PriceMatrix = entity.PriceMatrix(req.PriceMatrix)
	}

	if err := s.checkSchedule(ctx, showtime, &showtime.ID); err != nil {
		return nil, err
	}

	showtime.Touch()
	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		return nil, err
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, showtimeID string) error {
	id, err := parseID(showtimeID, "showtime")
	if err != nil {
		return err
	}
	return s.repo.Showtime.Delete(ctx, id)
}

func (s *showtimeService) GetShowtimeTickets(ctx context.Context, showtimeID string) ([]response.TicketResponse, error) {
	id, err := parseID(showtimeID, "showtime")
	if err != nil {
		return nil, err
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime %s: %w", id, err)
	}
	if showtime == nil {
		return nil, utils.NotFound("showtime")
	}

	tickets, err := s.repo.Ticket.FindByShowtimeID(ctx, id)
	if err != nil {
		return nil, err
	}

	return response.TicketsToResponse(tickets), nil
}

func (s *showtimeService) checkReferences(ctx context.Context, movieID, hallID uuid.UUID) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, utils.NewValidationError("validation failed", map[string]string{"movie_id": "Movie does not exist"})
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("get hall %s: %w", hallID, err)
	}
	if hall == nil {
		return nil, utils.NewValidationError("validation failed", map[string]string{"hall_id": "Hall does not exist"})
	}

	return movie, nil
}

// checkSchedule validates the time window and price matrix and rejects
// overlaps with other showtimes in the same hall.
func (s *showtimeService) checkSchedule(ctx context.Context, showtime *entity.Showtime, excludeID *uuid.UUID) error {
	if !showtime.EndsAt.After(showtime.StartsAt) {
		return utils.NewValidationError("validation failed", map[string]string{"ends_at": "Must be after starts_at"})
	}

	for name, price := range showtime.PriceMatrix {
		if name == "" {
			return utils.NewValidationError("validation failed", map[string]string{"price_matrix": "Seat type names must not be empty"})
		}
		if price.LessThan(decimal.Zero) {
			return utils.NewValidationError("validation failed", map[string]string{
				"price_matrix." + name: "Must be greater than or equal to 0",
			})
		}
	}

	overlap, err := s.repo.Showtime.HasOverlap(ctx, showtime.HallID, showtime.StartsAt, showtime.EndsAt, excludeID)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if overlap {
		return utils.NewValidationError("validation failed", map[string]string{
			"starts_at": "Hall already has a showtime in this time window",
		})
	}
	return nil
}
