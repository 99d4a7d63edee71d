package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SeatRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	// FindByIDs returns the seats that exist, with their seat type loaded.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)
	FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error)
	Update(ctx context.Context, seat *entity.Seat) error
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

const seatSelect = `
	SELECT s.id, s.hall_id, s.row_label, s.seat_number, s.seat_type_id, s.status,
	       s.created_at, s.updated_at,
	       st.tenant_id, st.name, st.price_multiplier
	FROM seats s
	LEFT JOIN seat_types st ON st.id = s.seat_type_id
`

func scanSeat(row scanner) (*entity.Seat, error) {
	var (
		s          entity.Seat
		tenantID   *uuid.UUID
		typeName   *string
		multiplier decimal.NullDecimal
	)
	if err := row.Scan(
		&s.ID,
		&s.HallID,
		&s.RowLabel,
		&s.SeatNumber,
		&s.SeatTypeID,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
		&tenantID,
		&typeName,
		&multiplier,
	); err != nil {
		return nil, err
	}

	if s.SeatTypeID != nil && typeName != nil {
		s.SeatType = &entity.SeatType{
			Base:            entity.Base{ID: *s.SeatTypeID},
			Name:            *typeName,
			PriceMultiplier: multiplier.Decimal,
		}
		if tenantID != nil {
			s.SeatType.TenantID = *tenantID
		}
	}
	return &s, nil
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	seat, err := scanSeat(r.db.QueryRow(ctx, seatSelect+` WHERE s.id = $1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID", zap.Error(err), zap.String("seat_id", id.String()))
		return nil, fmt.Errorf("find seat by ID %s: %w", id, err)
	}
	return seat, nil
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, seatSelect+` WHERE s.id = ANY($1) ORDER BY s.row_label, s.seat_number`, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find seats by IDs: %w", err)
	}

	seats, err := collect(rows, scanSeat)
	if err != nil {
		return nil, fmt.Errorf("scan seats: %w", err)
	}
	return seats, nil
}

func (r *seatRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	query := seatSelect + ` WHERE s.hall_id = $1 ORDER BY LENGTH(s.row_label), s.row_label, s.seat_number`

	rows, err := r.db.Query(ctx, query, hallID)
	if err != nil {
		r.log.Error("Failed to find seats by hall", zap.Error(err), zap.String("hall_id", hallID.String()))
		return nil, fmt.Errorf("find seats of hall %s: %w", hallID, err)
	}

	seats, err := collect(rows, scanSeat)
	if err != nil {
		return nil, fmt.Errorf("scan seats: %w", err)
	}
	return seats, nil
}

func (r *seatRepository) Update(ctx context.Context, seat *entity.Seat) error {
	query := `UPDATE seats SET seat_type_id = $2, status = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, seat.ID, seat.SeatTypeID, seat.Status, seat.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return utils.NewValidationError("validation failed", map[string]string{"seat_type_id": "Seat type does not exist"})
		}
		r.log.Error("Failed to update seat", zap.Error(err), zap.String("seat_id", seat.ID.String()))
		return fmt.Errorf("update seat %s: %w", seat.ID, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("seat")
	}
	return nil
}
