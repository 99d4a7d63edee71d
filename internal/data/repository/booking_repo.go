package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrConfirmationCodeTaken is returned when a generated confirmation code
// collides with an existing booking. Callers may retry with a new code.
var ErrConfirmationCodeTaken = errors.New("confirmation code already in use")

type BookingFilter struct {
	UserID     *uuid.UUID
	ShowtimeID *uuid.UUID
	Status     *entity.BookingStatus
}

type BookingRepository interface {
	// CreateWithTickets locks the showtime, rejects seats held by an active
	// booking and inserts the booking with its tickets in one transaction.
	CreateWithTickets(ctx context.Context, booking *entity.Booking, tickets []*entity.Ticket) error
	// FindBookedSeatIDs lists seats held by active bookings for the showtime.
	FindBookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter BookingFilter) (int64, error)
	// Cancel marks the booking cancelled and voids its tickets.
	Cancel(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, tenant_id, user_id, showtime_id, total_price, status, payment_reference,
	confirmation_code, created_at, updated_at`

// activeSeatsQuery selects seats held for a showtime. The conflict check and
// the availability query both build on it so they cannot disagree.
const activeSeatsQuery = `
	SELECT t.seat_id
	FROM tickets t
	JOIN bookings b ON b.id = t.booking_id
	WHERE t.showtime_id = $1
	  AND t.status = 'valid'
	  AND b.status = ANY($2)
`

func scanBooking(row scanner) (*entity.Booking, error) {
	var b entity.Booking
	if err := row.Scan(
		&b.ID,
		&b.TenantID,
		&b.UserID,
		&b.ShowtimeID,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentReference,
		&b.ConfirmationCode,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanUUID(row scanner) (*uuid.UUID, error) {
	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	return &id, nil
}

func seatIDs(tickets []*entity.Ticket) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.SeatID)
	}
	return ids
}

func derefIDs(ptrs []*uuid.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(ptrs))
	for _, p := range ptrs {
		ids = append(ids, *p)
	}
	return ids
}

func (r *bookingRepository) CreateWithTickets(ctx context.Context, booking *entity.Booking, tickets []*entity.Ticket) error {
	requested := seatIDs(tickets)

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// serializes concurrent bookings for the same showtime
		var locked uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM showtimes WHERE id = $1 FOR UPDATE`, booking.ShowtimeID).Scan(&locked)
		if isNoRows(err) {
			return utils.NotFound("showtime")
		}
		if err != nil {
			return fmt.Errorf("lock showtime: %w", err)
		}

		rows, err := tx.Query(ctx, activeSeatsQuery+` AND t.seat_id = ANY($3)`,
			booking.ShowtimeID, entity.ActiveBookingStatuses, requested)
		if err != nil {
			return fmt.Errorf("check seat conflicts: %w", err)
		}
		taken, err := collect(rows, scanUUID)
		if err != nil {
			return fmt.Errorf("scan seat conflicts: %w", err)
		}
		if len(taken) > 0 {
			return &SeatsTakenError{ShowtimeID: booking.ShowtimeID, SeatIDs: derefIDs(taken)}
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO bookings (id, tenant_id, user_id, showtime_id, total_price, status, payment_reference,
				confirmation_code, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			booking.ID,
			booking.TenantID,
			booking.UserID,
			booking.ShowtimeID,
			booking.TotalPrice,
			booking.Status,
			booking.PaymentReference,
			booking.ConfirmationCode,
			booking.CreatedAt,
			booking.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		for _, ticket := range tickets {
			if _, err := tx.Exec(ctx, `
				INSERT INTO tickets (id, booking_id, showtime_id, seat_id, price, status, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				ticket.ID,
				ticket.BookingID,
				ticket.ShowtimeID,
				ticket.SeatID,
				ticket.Price,
				ticket.Status,
				ticket.CreatedAt,
			); err != nil {
				return fmt.Errorf("insert ticket for seat %s: %w", ticket.SeatID, err)
			}
		}
		return nil
	})

	switch {
	case err == nil:
		booking.Tickets = tickets
		r.log.Info("Booking created",
			zap.String("booking_id", booking.ID.String()),
			zap.String("showtime_id", booking.ShowtimeID.String()),
			zap.String("confirmation_code", booking.ConfirmationCode),
			zap.Int("tickets", len(tickets)),
			zap.String("total", booking.TotalPrice.StringFixed(2)),
		)
		return nil
	case errors.Is(err, utils.ErrNotFound), errors.Is(err, utils.ErrConflict):
		r.log.Warn("Booking rejected",
			zap.Error(err),
			zap.String("showtime_id", booking.ShowtimeID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return err
	case database.IsUniqueViolation(err, "tickets_active_seat_key"):
		// lost a race the row lock did not cover
		return &SeatsTakenError{ShowtimeID: booking.ShowtimeID, SeatIDs: requested}
	case database.IsUniqueViolation(err, "bookings_confirmation_code_key"):
		return ErrConfirmationCodeTaken
	case database.IsForeignKeyViolation(err):
		return utils.NewValidationError("validation failed", map[string]string{"seat_ids": "One or more seats do not exist"})
	default:
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("showtime_id", booking.ShowtimeID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking for showtime %s: %w", booking.ShowtimeID, err)
	}
}

func (r *bookingRepository) FindBookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, activeSeatsQuery, showtimeID, entity.ActiveBookingStatuses)
	if err != nil {
		r.log.Error("Failed to find booked seats", zap.Error(err), zap.String("showtime_id", showtimeID.String()))
		return nil, fmt.Errorf("find booked seats of showtime %s: %w", showtimeID, err)
	}

	ids, err := collect(rows, scanUUID)
	if err != nil {
		return nil, fmt.Errorf("scan booked seats: %w", err)
	}
	return derefIDs(ids), nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	if err := r.attachTickets(ctx, []*entity.Booking{booking}); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepository) attachTickets(ctx context.Context, bookings []*entity.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	tickets, err := findTicketsByBookingIDs(ctx, r.db, ids)
	if err != nil {
		r.log.Error("Failed to load booking tickets", zap.Error(err), zap.Int("bookings", len(ids)))
		return fmt.Errorf("load tickets: %w", err)
	}

	byBooking := make(map[uuid.UUID][]*entity.Ticket, len(bookings))
	for _, t := range tickets {
		byBooking[t.BookingID] = append(byBooking[t.BookingID], t)
	}
	for _, b := range bookings {
		b.Tickets = byBooking[b.ID]
	}
	return nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return r.FindAll(ctx, BookingFilter{UserID: &userID}, limit, offset)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.CountAll(ctx, BookingFilter{UserID: &userID})
}

func bookingWhere(filter BookingFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.ShowtimeID != nil {
		args = append(args, *filter.ShowtimeID)
		conditions = append(conditions, fmt.Sprintf("showtime_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	where, args := bookingWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM bookings%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookings, err := collect(rows, scanBooking)
	if err != nil {
		return nil, fmt.Errorf("scan bookings: %w", err)
	}

	if err := r.attachTickets(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountAll(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := bookingWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return total, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var status entity.BookingStatus
		err := tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, id).Scan(&status)
		if isNoRows(err) {
			return utils.NotFound("booking")
		}
		if err != nil {
			return fmt.Errorf("lock booking: %w", err)
		}
		if status == entity.BookingStatusCancelled {
			return utils.Invalid("booking is already cancelled")
		}

		if _, err := tx.Exec(ctx,
			`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
			id, entity.BookingStatusCancelled,
		); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE tickets SET status = $2 WHERE booking_id = $1`,
			id, entity.TicketStatusVoid,
		); err != nil {
			return fmt.Errorf("void tickets: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) || errors.Is(err, utils.ErrValidation) {
			return err
		}
		r.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("cancel booking %s: %w", id, err)
	}

	r.log.Info("Booking cancelled", zap.String("booking_id", id.String()))
	return nil
}

// Delete removes the booking; its tickets cascade and the seats become free.
func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("delete booking %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("booking")
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}
