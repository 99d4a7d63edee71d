package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HallRepository interface {
	// CreateWithSeats inserts the hall and its seat grid atomically.
	CreateWithSeats(ctx context.Context, hall *entity.Hall, seats []*entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error)
	FindByCinemaID(ctx context.Context, cinemaID uuid.UUID) ([]*entity.Hall, error)
	Update(ctx context.Context, hall *entity.Hall) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "hall")),
	}
}

const hallColumns = `id, cinema_id, name, capacity, layout_rows, layout_columns, created_at, updated_at`

func scanHall(row scanner) (*entity.Hall, error) {
	var h entity.Hall
	if err := row.Scan(
		&h.ID,
		&h.CinemaID,
		&h.Name,
		&h.Capacity,
		&h.Rows,
		&h.Columns,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hallRepository) CreateWithSeats(ctx context.Context, hall *entity.Hall, seats []*entity.Seat) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO halls (id, cinema_id, name, capacity, layout_rows, layout_columns, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err := tx.Exec(ctx, query,
			hall.ID,
			hall.CinemaID,
			hall.Name,
			hall.Capacity,
			hall.Rows,
			hall.Columns,
			hall.CreatedAt,
			hall.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert hall: %w", err)
		}

		// batch the seat inserts into one round trip
		batch := &pgx.Batch{}
		for _, seat := range seats {
			batch.Queue(`
				INSERT INTO seats (id, hall_id, row_label, seat_number, seat_type_id, status, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				seat.ID,
				seat.HallID,
				seat.RowLabel,
				seat.SeatNumber,
				seat.SeatTypeID,
				seat.Status,
				seat.CreatedAt,
				seat.UpdatedAt,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert seats: %w", err)
		}
		return nil
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return utils.NotFound("cinema")
		}
		r.log.Error("Failed to create hall",
			zap.Error(err),
			zap.String("cinema_id", hall.CinemaID.String()),
			zap.String("name", hall.Name),
			zap.Int("seats", len(seats)),
		)
		return fmt.Errorf("create hall %s in cinema %s: %w", hall.Name, hall.CinemaID, err)
	}

	return nil
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	query := `SELECT ` + hallColumns + ` FROM halls WHERE id = $1`

	hall, err := scanHall(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall by ID", zap.Error(err), zap.String("hall_id", id.String()))
		return nil, fmt.Errorf("find hall by ID %s: %w", id, err)
	}

	return hall, nil
}

func (r *hallRepository) FindByCinemaID(ctx context.Context, cinemaID uuid.UUID) ([]*entity.Hall, error) {
	query := `SELECT ` + hallColumns + ` FROM halls WHERE cinema_id = $1 ORDER BY name`

	rows, err := r.db.Query(ctx, query, cinemaID)
	if err != nil {
		r.log.Error("Failed to find halls by cinema", zap.Error(err), zap.String("cinema_id", cinemaID.String()))
		return nil, fmt.Errorf("find halls of cinema %s: %w", cinemaID, err)
	}

	halls, err := collect(rows, scanHall)
	if err != nil {
		return nil, fmt.Errorf("scan halls: %w", err)
	}
	return halls, nil
}

// Update changes name and capacity only; the seat grid is fixed at creation.
func (r *hallRepository) Update(ctx context.Context, hall *entity.Hall) error {
	query := `UPDATE halls SET name = $2, capacity = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, hall.ID, hall.Name, hall.Capacity, hall.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update hall", zap.Error(err), zap.String("hall_id", hall.ID.String()))
		return fmt.Errorf("update hall %s: %w", hall.ID, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("hall")
	}
	return nil
}

func (r *hallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM halls WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete hall", zap.Error(err), zap.String("hall_id", id.String()))
		return fmt.Errorf("delete hall %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("hall")
	}

	r.log.Info("Hall deleted", zap.String("hall_id", id.String()))
	return nil
}
