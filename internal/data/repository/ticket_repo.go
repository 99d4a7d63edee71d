package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketRepository interface {
	FindByShowtimeID(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Ticket, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketSelect = `
	SELECT t.id, t.booking_id, t.showtime_id, t.seat_id, t.price, t.status, t.created_at,
	       s.hall_id, s.row_label, s.seat_number, s.seat_type_id, s.status
	FROM tickets t
	JOIN seats s ON s.id = t.seat_id
`

func scanTicket(row scanner) (*entity.Ticket, error) {
	var (
		t    entity.Ticket
		seat entity.Seat
	)
	if err := row.Scan(
		&t.ID,
		&t.BookingID,
		&t.ShowtimeID,
		&t.SeatID,
		&t.Price,
		&t.Status,
		&t.CreatedAt,
		&seat.HallID,
		&seat.RowLabel,
		&seat.SeatNumber,
		&seat.SeatTypeID,
		&seat.Status,
	); err != nil {
		return nil, err
	}
	seat.ID = t.SeatID
	t.Seat = &seat
	return &t, nil
}

// findTicketsByBookingIDs is shared with the booking repository, which
// attaches tickets to the bookings it loads.
func findTicketsByBookingIDs(ctx context.Context, db database.DBTX, bookingIDs []uuid.UUID) ([]*entity.Ticket, error) {
	rows, err := db.Query(ctx,
		ticketSelect+` WHERE t.booking_id = ANY($1) ORDER BY s.row_label, s.seat_number`,
		bookingIDs,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTicket)
}

// FindByShowtimeID returns every ticket issued for the showtime, void ones included.
func (r *ticketRepository) FindByShowtimeID(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Ticket, error) {
	rows, err := r.db.Query(ctx,
		ticketSelect+` WHERE t.showtime_id = $1 ORDER BY t.created_at, s.row_label, s.seat_number`,
		showtimeID,
	)
	if err != nil {
		r.log.Error("Failed to find tickets by showtime", zap.Error(err), zap.String("showtime_id", showtimeID.String()))
		return nil, fmt.Errorf("find tickets of showtime %s: %w", showtimeID, err)
	}

	tickets, err := collect(rows, scanTicket)
	if err != nil {
		return nil, fmt.Errorf("scan tickets: %w", err)
	}
	return tickets, nil
}
