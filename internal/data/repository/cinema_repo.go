package repository

import (
	"context"
	"fmt"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CinemaRepository interface {
	Create(ctx context.Context, cinema *entity.Cinema) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error)
	FindAll(ctx context.Context, search *string, limit, offset int) ([]*entity.Cinema, error)
	CountAll(ctx context.Context, search *string) (int64, error)
	Update(ctx context.Context, cinema *entity.Cinema) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type cinemaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCinemaRepository(db database.PgxIface, log *zap.Logger) CinemaRepository {
	return &cinemaRepository{
		db:  db,
		log: log.With(zap.String("repository", "cinema")),
	}
}

const cinemaColumns = `id, tenant_id, name, location, contact_email, created_at, updated_at`

func scanCinema(row scanner) (*entity.Cinema, error) {
	var c entity.Cinema
	if err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.Location,
		&c.ContactEmail,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cinemaRepository) Create(ctx context.Context, cinema *entity.Cinema) error {
	query := `
		INSERT INTO cinemas (id, tenant_id, name, location, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		cinema.ID,
		cinema.TenantID,
		cinema.Name,
		cinema.Location,
		cinema.ContactEmail,
		cinema.CreatedAt,
		cinema.UpdatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return utils.NewValidationError("validation failed", map[string]string{"tenant_id": "Tenant does not exist"})
		}
		r.log.Error("Failed to create cinema", zap.Error(err), zap.String("name", cinema.Name))
		return fmt.Errorf("create cinema %s: %w", cinema.Name, err)
	}

	return nil
}

func (r *cinemaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error) {
	query := `SELECT ` + cinemaColumns + ` FROM cinemas WHERE id = $1`

	cinema, err := scanCinema(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cinema by ID", zap.Error(err), zap.String("cinema_id", id.String()))
		return nil, fmt.Errorf("find cinema by ID %s: %w", id, err)
	}

	return cinema, nil
}

func cinemaSearch(search *string) (string, []any) {
	if search == nil {
		return "", nil
	}
	return ` WHERE name ILIKE $1 OR location ILIKE $1`, []any{"%" + strings.TrimSpace(*search) + "%"}
}

func (r *cinemaRepository) FindAll(ctx context.Context, search *string, limit, offset int) ([]*entity.Cinema, error) {
	where, args := cinemaSearch(search)
	query := fmt.Sprintf(`SELECT %s FROM cinemas%s ORDER BY name LIMIT $%d OFFSET $%d`,
		cinemaColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		r.log.Error("Failed to list cinemas", zap.Error(err))
		return nil, fmt.Errorf("list cinemas: %w", err)
	}

	cinemas, err := collect(rows, scanCinema)
	if err != nil {
		return nil, fmt.Errorf("scan cinemas: %w", err)
	}
	return cinemas, nil
}

func (r *cinemaRepository) CountAll(ctx context.Context, search *string) (int64, error) {
	where, args := cinemaSearch(search)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cinemas`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count cinemas", zap.Error(err))
		return 0, fmt.Errorf("count cinemas: %w", err)
	}
	return total, nil
}

func (r *cinemaRepository) Update(ctx context.Context, cinema *entity.Cinema) error {
	query := `
		UPDATE cinemas
		SET tenant_id = $2, name = $3, location = $4, contact_email = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		cinema.ID,
		cinema.TenantID,
		cinema.Name,
		cinema.Location,
		cinema.ContactEmail,
		cinema.UpdatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return utils.NewValidationError("validation failed", map[string]string{"tenant_id": "Tenant does not exist"})
		}
		r.log.Error("Failed to update cinema", zap.Error(err), zap.String("cinema_id", cinema.ID.String()))
		return fmt.Errorf("update cinema %s: %w", cinema.ID, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("cinema")
	}
	return nil
}

// Delete cascades to halls, seats, showtimes and their bookings.
func (r *cinemaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM cinemas WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete cinema", zap.Error(err), zap.String("cinema_id", id.String()))
		return fmt.Errorf("delete cinema %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("cinema")
	}

	r.log.Info("Cinema deleted", zap.String("cinema_id", id.String()))
	return nil
}
