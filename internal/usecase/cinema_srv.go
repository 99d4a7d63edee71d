package usecase

import (
	"context"
	"fmt"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CinemaService interface {
	GetCinemas(ctx context.Context, req *request.PaginatedRequest, search *string) (*response.PaginatedResponse[response.CinemaResponse], error)
	GetCinema(ctx context.Context, cinemaID string) (*response.CinemaDetailResponse, error)
	CreateCinema(ctx context.Context, req *request.CinemaRequest) (*response.CinemaResponse, error)
	UpdateCinema(ctx context.Context, cinemaID string, req *request.CinemaUpdateRequest) (*response.CinemaResponse, error)
	DeleteCinema(ctx context.Context, cinemaID string) error

	// Halls and their seat grids
	CreateHall(ctx context.Context, cinemaID string, req *request.HallRequest) (*response.HallResponse, error)
	GetHall(ctx context.Context, hallID string) (*response.HallResponse, error)
	GetHallSeats(ctx context.Context, hallID string) ([]response.SeatResponse, error)
	UpdateHall(ctx context.Context, hallID string, req *request.HallUpdateRequest) (*response.HallResponse, error)
	DeleteHall(ctx context.Context, hallID string) error
	UpdateSeat(ctx context.Context, seatID string, req *request.SeatUpdateRequest) (*response.SeatResponse, error)
}

type cinemaService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCinemaService(repo *repository.Repository, log *zap.Logger) CinemaService {
	return &cinemaService{
		repo: repo,
		log:  log.With(zap.String("service", "cinema")),
	}
}

func (s *cinemaService) GetCinemas(ctx context.Context, req *request.PaginatedRequest, search *string) (*response.PaginatedResponse[response.CinemaResponse], error) {
	cinemas, err := s.repo.Cinema.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get cinemas: %w", err)
	}

	total, err := s.repo.Cinema.CountAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count cinemas: %w", err)
	}

	return response.NewPaginatedResponse(response.CinemasToResponse(cinemas), req.Page, req.Limit(), total), nil
}

func (s *cinemaService) GetCinema(ctx context.Context, cinemaID string) (*response.CinemaDetailResponse, error) {
	cinema, err := s.findCinema(ctx, cinemaID)
	if err != nil {
		return nil, err
	}

	halls, err := s.repo.Hall.FindByCinemaID(ctx, cinema.ID)
	if err != nil {
		return nil, fmt.Errorf("get halls of cinema %s: %w", cinema.ID, err)
	}

	resp := response.CinemaToDetailResponse(cinema, halls)
	return &resp, nil
}

func (s *cinemaService) findCinema(ctx context.Context, cinemaID string) (*entity.Cinema, error) {
	id, err := parseID(cinemaID, "cinema")
	if err != nil {
		return nil, err
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cinema %s: %w", id, err)
	}
	if cinema == nil {
		return nil, utils.NotFound("cinema")
	}
	return cinema, nil
}

// tenantFor returns the requested tenant, or the default tenant when none
// was given.
func (s *cinemaService) tenantFor(ctx context.Context, raw *string) (*uuid.UUID, error) {
	tenantID, err := parseOptionalID(raw, "tenant_id")
	if err != nil || tenantID != nil {
		return tenantID, err
	}

	tenant, err := s.repo.Tenant.FindOrCreateDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("default tenant: %w", err)
	}
	return &tenant.ID, nil
}

func (s *cinemaService) CreateCinema(ctx context.Context, req *request.CinemaRequest) (*response.CinemaResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	tenantID, err := s.tenantFor(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	cinema := &entity.Cinema{
		Base:         entity.NewBase(),
		TenantID:     tenantID,
		Name:         strings.TrimSpace(req.Name),
		Location:     strings.TrimSpace(req.Location),
		ContactEmail: req.ContactEmail,
	}

	if err := s.repo.Cinema.Create(ctx, cinema); err != nil {
		return nil, err
	}

	s.log.Info("Cinema created", zap.String("cinema_id", cinema.ID.String()), zap.String("name", cinema.Name))

	resp := response.CinemaToResponse(cinema)
	return &resp, nil
}

func (s *cinemaService) UpdateCinema(ctx context.Context, cinemaID string, req *request.CinemaUpdateRequest) (*response.CinemaResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	cinema, err := s.findCinema(ctx, cinemaID)
	if err != nil {
		return nil, err
	}

	if req.TenantID != nil {
		if cinema.TenantID, err = parseOptionalID(req.TenantID, "tenant_id"); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		cinema.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		cinema.Location = strings.TrimSpace(*req.Location)
	}
	if req.ContactEmail != nil {
		cinema.ContactEmail = req.ContactEmail
	}

	cinema.Touch()
	if err := s.repo.Cinema.Update(ctx, cinema); err != nil {
		return nil, err
	}

	resp := response.CinemaToResponse(cinema)
	return &resp, nil
}

func (s *cinemaService) DeleteCinema(ctx context.Context, cinemaID string) error {
	id, err := parseID(cinemaID, "cinema")
	if err != nil {
		return err
	}
	return s.repo.Cinema.Delete(ctx, id)
}

func (s *cinemaService) CreateHall(ctx context.Context, cinemaID string, req *request.HallRequest) (*response.HallResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	cinema, err := s.findCinema(ctx, cinemaID)
	if err != nil {
		return nil, err
	}

	seatTypeID, err := parseOptionalID(req.SeatTypeID, "seat_type_id")
	if err != nil {
		return nil, err
	}
	var seatType *entity.SeatType
	if seatTypeID != nil {
		if seatType, err = s.repo.SeatType.FindByID(ctx, *seatTypeID); err != nil {
			return nil, fmt.Errorf("get seat type %s: %w", *seatTypeID, err)
		}
		if seatType == nil {
			return nil, utils.NewValidationError("validation failed", map[string]string{"seat_type_id": "Seat type does not exist"})
		}
	}

	hall := &entity.Hall{
		Base:     entity.NewBase(),
		CinemaID: cinema.ID,
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Rows * req.Columns,
		Rows:     req.Rows,
		Columns:  req.Columns,
		Cinema:   cinema,
	}
	hall.Seats = SeatGrid(hall, seatType)

	if err := s.repo.Hall.CreateWithSeats(ctx, hall, hall.Seats); err != nil {
		return nil, err
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.String("cinema_id", cinema.ID.String()),
		zap.Int("seats", len(hall.Seats)),
	)

	resp := response.HallToResponse(hall)
	return &resp, nil
}

// SeatGrid lays out Rows x Columns seats labelled A1, A2, ..., B1, ...
func SeatGrid(hall *entity.Hall, seatType *entity.SeatType) []*entity.Seat {
	seats := make([]*entity.Seat, 0, hall.Rows*hall.Columns)
	for row := 0; row < hall.Rows; row++ {
		label := utils.RowLabel(row)
		for number := 1; number <= hall.Columns; number++ {
			seat := &entity.Seat{
				Base:       entity.NewBase(),
				HallID:     hall.ID,
				RowLabel:   label,
				SeatNumber: number,
				Status:     entity.SeatStatusAvailable,
			}
			if seatType != nil {
				seat.SeatTypeID = &seatType.ID
				seat.SeatType = seatType
			}
			seats = append(seats, seat)
		}
	}
	return seats
}

func (s *cinemaService) findHall(ctx context.Context, hallID string) (*entity.Hall, error) {
	id, err := parseID(hallID, "hall")
	if err != nil {
		return nil, err
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hall %s: %w", id, err)
	}
	if hall == nil {
		return nil, utils.NotFound("hall")
	}
	return hall, nil
}

func (s *cinemaService) GetHall(ctx context.Context, hallID string) (*response.HallResponse, error) {
	hall, err := s.findHall(ctx, hallID)
	if err != nil {
		return nil, err
	}

	if hall.Cinema, err = s.repo.Cinema.FindByID(ctx, hall.CinemaID); err != nil {
		return nil, fmt.Errorf("get cinema %s: %w", hall.CinemaID, err)
	}
	if hall.Seats, err = s.repo.Seat.FindByHallID(ctx, hall.ID); err != nil {
		return nil, fmt.Errorf("get seats of hall %s: %w", hall.ID, err)
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *cinemaService) GetHallSeats(ctx context.Context, hallID string) ([]response.SeatResponse, error) {
	hall, err := s.findHall(ctx, hallID)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.FindByHallID(ctx, hall.ID)
	if err != nil {
		return nil, fmt.Errorf("get seats of hall %s: %w", hall.ID, err)
	}
	return response.SeatsToResponse(seats), nil
}

func (s *cinemaService) UpdateHall(ctx context.Context, hallID string, req *request.HallUpdateRequest) (*response.HallResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	hall, err := s.findHall(ctx, hallID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		hall.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		hall.Capacity = *req.Capacity
	}

	hall.Touch()
	if err := s.repo.Hall.Update(ctx, hall); err != nil {
		return nil, err
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *cinemaService) DeleteHall(ctx context.Context, hallID string) error {
	id, err := parseID(hallID, "hall")
	if err != nil {
		return err
	}
	return s.repo.Hall.Delete(ctx, id)
}

func (s *cinemaService) UpdateSeat(ctx context.Context, seatID string, req *request.SeatUpdateRequest) (*response.SeatResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	id, err := parseID(seatID, "seat")
	if err != nil {
		return nil, err
	}

	seat, err := s.repo.Seat.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seat %s: %w", id, err)
	}
	if seat == nil {
		return nil, utils.NotFound("seat")
	}

	if req.SeatTypeID != nil {
		typeID, err := parseOptionalID(req.SeatTypeID, "seat_type_id")
		if err != nil {
			return nil, err
		}
		seat.SeatTypeID = typeID
		seat.SeatType = nil
	}
	if req.Status != nil {
		seat.Status = entity.SeatStatus(*req.Status)
	}

	seat.Touch()
	if err := s.repo.Seat.Update(ctx, seat); err != nil {
		return nil, err
	}

	// reload for the seat type details
	updated, err := s.repo.Seat.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seat %s: %w", id, err)
	}
	if updated == nil {
		return nil, utils.NotFound("seat")
	}

	resp := response.SeatToResponse(updated)
	return &resp, nil
}
