package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeFilter struct {
	MovieID *uuid.UUID
	HallID  *uuid.UUID
	From    *time.Time
	To      *time.Time
}

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	// FindDetail loads the showtime with its movie, hall and cinema.
	FindDetail(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID, from time.Time) ([]*entity.Showtime, error)
	FindAll(ctx context.Context, filter ShowtimeFilter, limit, offset int) ([]*entity.Showtime, error)
	CountAll(ctx context.Context, filter ShowtimeFilter) (int64, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id uuid.UUID) error
	// HasOverlap reports whether another showtime occupies the hall within [start, end).
	HasOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	// ResolveTenantID returns the tenant owning the showtime's cinema, nil when unassigned.
	ResolveTenantID(ctx context.Context, showtimeID uuid.UUID) (*uuid.UUID, error)
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeColumns = `id, movie_id, hall_id, starts_at, ends_at, price_matrix, created_at, updated_at`

func scanShowtime(row scanner) (*entity.Showtime, error) {
	var s entity.Showtime
	if err := row.Scan(
		&s.ID,
		&s.MovieID,
		&s.HallID,
		&s.StartsAt,
		&s.EndsAt,
		&s.PriceMatrix,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if s.PriceMatrix == nil {
		s.PriceMatrix = entity.PriceMatrix{}
	}
	return &s, nil
}

func priceMatrix(m entity.PriceMatrix) entity.PriceMatrix {
	if m == nil {
		return entity.PriceMatrix{}
	}
	return m
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, hall_id, starts_at, ends_at, price_matrix, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.HallID,
		showtime.StartsAt,
		showtime.EndsAt,
		priceMatrix(showtime.PriceMatrix),
		showtime.CreatedAt,
		showtime.UpdatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return utils.NewValidationError("validation failed", map[string]string{
				"movie_id": "Movie or hall does not exist",
			})
		}
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
			zap.String("hall_id", showtime.HallID.String()),
		)
		return fmt.Errorf("create showtime: %w", err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	showtime, err := scanShowtime(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID", zap.Error(err), zap.String("showtime_id", id.String()))
		return nil, fmt.Errorf("find showtime by ID %s: %w", id, err)
	}
	return showtime, nil
}

func (r *showtimeRepository) FindDetail(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT s.id, s.movie_id, s.hall_id, s.starts_at, s.ends_at, s.price_matrix, s.created_at, s.updated_at,
		       m.title, m.slug, m.duration_minutes, m.status, m.poster_url,
		       h.name, h.capacity, h.layout_rows, h.layout_columns,
		       c.id, c.tenant_id, c.name, c.location
		FROM showtimes s
		JOIN movies m ON m.id = s.movie_id
		JOIN halls h ON h.id = s.hall_id
		JOIN cinemas c ON c.id = h.cinema_id
		WHERE s.id = $1
	`

	var (
		s      entity.Showtime
		movie  entity.Movie
		hall   entity.Hall
		cinema entity.Cinema
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.MovieID,
		&s.HallID,
		&s.StartsAt,
		&s.EndsAt,
		&s.PriceMatrix,
		&s.CreatedAt,
		&s.UpdatedAt,
		&movie.Title,
		&movie.Slug,
		&movie.DurationMinutes,
		&movie.Status,
		&movie.PosterURL,
		&hall.Name,
		&hall.Capacity,
		&hall.Rows,
		&hall.Columns,
		&cinema.ID,
		&cinema.TenantID,
		&cinema.Name,
		&cinema.Location,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime detail", zap.Error(err), zap.String("showtime_id", id.String()))
		return nil, fmt.Errorf("find showtime detail %s: %w", id, err)
	}

	if s.PriceMatrix == nil {
		s.PriceMatrix = entity.PriceMatrix{}
	}
	movie.ID = s.MovieID
	hall.ID = s.HallID
	hall.CinemaID = cinema.ID
	hall.Cinema = &cinema
	s.Movie = &movie
	s.Hall = &hall

	return &s, nil
}

func (r *showtimeRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID, from time.Time) ([]*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE movie_id = $1 AND starts_at >= $2
		ORDER BY starts_at`

	rows, err := r.db.Query(ctx, query, movieID, from)
	if err != nil {
		r.log.Error("Failed to find showtimes by movie", zap.Error(err), zap.String("movie_id", movieID.String()))
		return nil, fmt.Errorf("find showtimes of movie %s: %w", movieID, err)
	}

	showtimes, err := collect(rows, scanShowtime)
	if err != nil {
		return nil, fmt.Errorf("scan showtimes: %w", err)
	}
	return showtimes, nil
}

func showtimeWhere(filter ShowtimeFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.MovieID != nil {
		args = append(args, *filter.MovieID)
		conditions = append(conditions, fmt.Sprintf("movie_id = $%d", len(args)))
	}
	if filter.HallID != nil {
		args = append(args, *filter.HallID)
		conditions = append(conditions, fmt.Sprintf("hall_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("starts_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("starts_at < $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *showtimeRepository) FindAll(ctx context.Context, filter ShowtimeFilter, limit, offset int) ([]*entity.Showtime, error) {
	where, args := showtimeWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM showtimes%s ORDER BY starts_at LIMIT $%d OFFSET $%d`,
		showtimeColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		r.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	showtimes, err := collect(rows, scanShowtime)
	if err != nil {
		return nil, fmt.Errorf("scan showtimes: %w", err)
	}
	return showtimes, nil
}

func (r *showtimeRepository) CountAll(ctx context.Context, filter ShowtimeFilter) (int64, error) {
	where, args := showtimeWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM showtimes`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count showtimes", zap.Error(err))
		return 0, fmt.Errorf("count showtimes: %w", err)
	}
	return total, nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// same lock CreateWithTickets takes, so no booking lands mid-move
		var currentHall uuid.UUID
		err := tx.QueryRow(ctx, `SELECT hall_id FROM showtimes WHERE id = $1 FOR UPDATE`, showtime.ID).Scan(&currentHall)
		if isNoRows(err) {
			return utils.NotFound("showtime")
		}
		if err != nil {
			return fmt.Errorf("lock showtime: %w", err)
		}

		if currentHall != showtime.HallID {
			var held bool
			err := tx.QueryRow(ctx, `SELECT EXISTS (`+activeSeatsQuery+`)`,
				showtime.ID, entity.ActiveBookingStatuses).Scan(&held)
			if err != nil {
				return fmt.Errorf("check active bookings: %w", err)
			}
			if held {
				return HallHasBookingsError()
			}
		}

		_, err = tx.Exec(ctx, `
			UPDATE showtimes
			SET movie_id = $2, hall_id = $3, starts_at = $4, ends_at = $5, price_matrix = $6, updated_at = $7
			WHERE id = $1
		`,
			showtime.ID,
			showtime.MovieID,
			showtime.HallID,
			showtime.StartsAt,
			showtime.EndsAt,
			priceMatrix(showtime.PriceMatrix),
			showtime.UpdatedAt,
		)
		return err
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return utils.NewValidationError("validation failed", map[string]string{
				"movie_id": "Movie or hall does not exist",
			})
		}
		var validationErr *utils.ValidationError
		if errors.As(err, &validationErr) || errors.Is(err, utils.ErrNotFound) {
			return err
		}
		r.log.Error("Failed to update showtime", zap.Error(err), zap.String("showtime_id", showtime.ID.String()))
		return fmt.Errorf("update showtime %s: %w", showtime.ID, err)
	}
	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM showtimes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete showtime", zap.Error(err), zap.String("showtime_id", id.String()))
		return fmt.Errorf("delete showtime %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("showtime")
	}

	r.log.Info("Showtime deleted", zap.String("showtime_id", id.String()))
	return nil
}

func (r *showtimeRepository) HasOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM showtimes
			WHERE hall_id = $1
			  AND starts_at < $3
			  AND ends_at > $2
			  AND ($4::uuid IS NULL OR id <> $4)
		)
	`

	var overlap bool
	if err := r.db.QueryRow(ctx, query, hallID, start, end, excludeID).Scan(&overlap); err != nil {
		r.log.Error("Failed to check showtime overlap", zap.Error(err), zap.String("hall_id", hallID.String()))
		return false, fmt.Errorf("check showtime overlap: %w", err)
	}
	return overlap, nil
}

func (r *showtimeRepository) ResolveTenantID(ctx context.Context, showtimeID uuid.UUID) (*uuid.UUID, error) {
	query := `
		SELECT c.tenant_id
		FROM showtimes s
		JOIN halls h ON h.id = s.hall_id
		JOIN cinemas c ON c.id = h.cinema_id
		WHERE s.id = $1
	`

	var tenantID *uuid.UUID
	err := r.db.QueryRow(ctx, query, showtimeID).Scan(&tenantID)
	if isNoRows(err) {
		return nil, utils.NotFound("showtime")
	}
	if err != nil {
		r.log.Error("Failed to resolve showtime tenant", zap.Error(err), zap.String("showtime_id", showtimeID.String()))
		return nil, fmt.Errorf("resolve tenant of showtime %s: %w", showtimeID, err)
	}
	return tenantID, nil
}
