package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const confirmationCodeAttempts = 3

const msgSeatsTaken = "One or more selected seats are already booked"

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetUserBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)

	// Admin
	GetBookings(ctx context.Context, req *request.PaginatedRequest, filter *request.BookingFilterRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo         *repository.Repository
	defaultPrice decimal.Decimal
	log          *zap.Logger
}

func NewBookingService(repo *repository.Repository, config utils.BookingConfig, log *zap.Logger) BookingService {
	return &bookingService{
		repo:         repo,
		defaultPrice: config.DefaultUnitPrice,
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, utils.NewValidationError("validation failed", map[string]string{"showtime_id": "Must be a valid UUID"})
	}
	seatIDs := make([]uuid.UUID, len(req.SeatIDs))
	for i, raw := range req.SeatIDs {
		if seatIDs[i], err = uuid.Parse(raw); err != nil {
			return nil, utils.NewValidationError("validation failed", map[string]string{"seat_ids": "Must be a valid UUID"})
		}
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("find showtime %s: %w", showtimeID, err)
	}
	if showtime == nil {
		return nil, utils.NotFound("showtime")
	}

	seats, err := s.bookableSeats(ctx, showtime, seatIDs)
	if err != nil {
		return nil, err
	}

	tenantID, err := s.resolveTenant(ctx, showtime.ID)
	if err != nil {
		return nil, err
	}

	base := basePrice(showtime.PriceMatrix, s.defaultPrice)
	booking := &entity.Booking{
		Base:       entity.NewBase(),
		TenantID:   tenantID,
		UserID:     userID,
		ShowtimeID: showtime.ID,
		Status:     entity.BookingStatusConfirmed,
		TotalPrice: decimal.Zero,
	}

	tickets := make([]*entity.Ticket, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		seat := seats[seatID]
		price := SeatPrice(showtime.PriceMatrix, base, seat)
		tickets = append(tickets, &entity.Ticket{
			BaseSimple: entity.NewBaseSimple(),
			BookingID:  booking.ID,
			ShowtimeID: showtime.ID,
			SeatID:     seatID,
			Price:      price,
			Status:     entity.TicketStatusValid,
			Seat:       seat,
		})
		booking.TotalPrice = booking.TotalPrice.Add(price)
	}

	if err := s.persist(ctx, booking, tickets); err != nil {
		var taken *repository.SeatsTakenError
		if errors.As(err, &taken) {
			return nil, &utils.ConflictError{
				Message: msgSeatsTaken,
				Details: map[string]any{"seat_ids": response.SeatIDsToStrings(taken.SeatIDs)},
			}
		}
		return nil, err
	}
	booking.Tickets = tickets

	s.log.Info("Booking confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("showtime_id", showtime.ID.String()),
		zap.Int("seats", len(tickets)),
		zap.String("total", booking.TotalPrice.StringFixed(2)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// bookableSeats loads the requested seats and checks that every one exists,
// sits in the showtime's hall and is not blocked.
func (s *bookingService) bookableSeats(ctx context.Context, showtime *entity.Showtime, seatIDs []uuid.UUID) (map[uuid.UUID]*entity.Seat, error) {
	found, err := s.repo.Seat.FindByIDs(ctx, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}

	seats := make(map[uuid.UUID]*entity.Seat, len(found))
	for _, seat := range found {
		seats[seat.ID] = seat
	}

	var missing, foreign, blocked []string
	for _, id := range seatIDs {
		seat, ok := seats[id]
		switch {
		case !ok:
			missing = append(missing, id.String())
		case seat.HallID != showtime.HallID:
			foreign = append(foreign, id.String())
		case seat.Status == entity.SeatStatusBlocked:
			blocked = append(blocked, seat.Label())
		}
	}

	switch {
	case len(missing) > 0:
		return nil, utils.NewValidationError("validation failed", map[string]string{
			"seat_ids": "Seats do not exist: " + strings.Join(missing, ", "),
		})
	case len(foreign) > 0:
		return nil, utils.NewValidationError("validation failed", map[string]string{
			"seat_ids": "Seats are not in the showtime's hall: " + strings.Join(foreign, ", "),
		})
	case len(blocked) > 0:
		sort.Strings(blocked)
		return nil, utils.NewValidationError("validation failed", map[string]string{
			"seat_ids": "Seats are not available: " + strings.Join(blocked, ", "),
		})
	}

	return seats, nil
}

// resolveTenant follows showtime -> hall -> cinema, falling back to the
// system-default tenant for cinemas without one.
func (s *bookingService) resolveTenant(ctx context.Context, showtimeID uuid.UUID) (uuid.UUID, error) {
	tenantID, err := s.repo.Showtime.ResolveTenantID(ctx, showtimeID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve tenant: %w", err)
	}
	if tenantID != nil {
		return *tenantID, nil
	}

	tenant, err := s.repo.Tenant.FindOrCreateDefault(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("default tenant: %w", err)
	}
	return tenant.ID, nil
}

func (s *bookingService) persist(ctx context.Context, booking *entity.Booking, tickets []*entity.Ticket) error {
	var err error
	for attempt := 0; attempt < confirmationCodeAttempts; attempt++ {
		if booking.ConfirmationCode, err = utils.GenerateConfirmationCode(); err != nil {
			return err
		}

		err = s.repo.Booking.CreateWithTickets(ctx, booking, tickets)
		if !errors.Is(err, repository.ErrConfirmationCodeTaken) {
			return err
		}
		s.log.Warn("Confirmation code collision, retrying", zap.Int("attempt", attempt+1))
	}
	return fmt.Errorf("create booking: %w", err)
}

// basePrice is the showtime's "standard" price, or fallback when the
// matrix has none.
func basePrice(matrix entity.PriceMatrix, fallback decimal.Decimal) decimal.Decimal {
	if price, ok := matrix.Standard(); ok {
		return price
	}
	return fallback
}

// SeatPrice prices one ticket: an explicit price-matrix entry for the seat's
// type wins, otherwise base scaled by the type's multiplier.
func SeatPrice(matrix entity.PriceMatrix, base decimal.Decimal, seat *entity.Seat) decimal.Decimal {
	if seat == nil || seat.SeatType == nil {
		return base.Round(2)
	}

	if price, ok := matrix[seat.SeatType.Name]; ok {
		return price.Round(2)
	}
	if price, ok := matrix[strings.ToLower(seat.SeatType.Name)]; ok {
		return price.Round(2)
	}

	multiplier := seat.SeatType.PriceMultiplier
	if !multiplier.IsPositive() {
		multiplier = decimal.NewFromInt(1)
	}
	return base.Mul(multiplier).Round(2)
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetUserBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// other users' bookings are reported as missing
	if booking.UserID != userID {
		return nil, utils.NotFound("booking")
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookings(ctx context.Context, req *request.PaginatedRequest, filter *request.BookingFilterRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	var repoFilter repository.BookingFilter
	if filter != nil {
		if err := utils.Validate(filter); err != nil {
			return nil, err
		}
		if filter.Status != nil {
			status := entity.BookingStatus(*filter.Status)
			repoFilter.Status = &status
		}
		showtimeID, err := parseOptionalID(filter.ShowtimeID, "showtime_id")
		if err != nil {
			return nil, err
		}
		repoFilter.ShowtimeID = showtimeID
	}

	bookings, err := s.repo.Booking.FindAll(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID(bookingID, "booking")
	if err != nil {
		return nil, err
	}

	if err := s.repo.Booking.Cancel(ctx, id); err != nil {
		return nil, err
	}

	return s.GetBookingByID(ctx, bookingID)
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := parseID(bookingID, "booking")
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Booking deleted, seats released", zap.String("booking_id", id.String()))
	return nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := parseID(bookingID, "booking")
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}
	if booking == nil {
		return nil, utils.NotFound("booking")
	}
	return booking, nil
}
