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

// MovieFilter narrows movie listings. Zero value lists everything.
type MovieFilter struct {
	Status        *entity.MovieStatus
	PublishedOnly bool
	Query         *string
}

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Movie, error)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	FindAll(ctx context.Context, filter MovieFilter, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter MovieFilter) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, slug, description, poster_url, trailer_url, duration_minutes, rating,
	genres, release_date, director, writers, status, content_rating, created_at, updated_at`

var errMovieSlugTaken = utils.NewValidationError("validation failed", map[string]string{"slug": "Slug already in use"})

func scanMovie(row scanner) (*entity.Movie, error) {
	var m entity.Movie
	if err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Slug,
		&m.Description,
		&m.PosterURL,
		&m.TrailerURL,
		&m.DurationMinutes,
		&m.Rating,
		&m.Genres,
		&m.ReleaseDate,
		&m.Director,
		&m.Writers,
		&m.Status,
		&m.ContentRating,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, slug, description, poster_url, trailer_url, duration_minutes, rating,
			genres, release_date, director, writers, status, content_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Slug,
		movie.Description,
		movie.PosterURL,
		movie.TrailerURL,
		movie.DurationMinutes,
		movie.Rating,
		nonNil(movie.Genres),
		movie.ReleaseDate,
		movie.Director,
		nonNil(movie.Writers),
		movie.Status,
		movie.ContentRating,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "movies_slug_key") {
			return errMovieSlugTaken
		}
		r.log.Error("Failed to create movie", zap.Error(err), zap.String("title", movie.Title))
		return fmt.Errorf("create movie %s: %w", movie.Title, err)
	}

	r.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("slug", movie.Slug),
		zap.String("status", string(movie.Status)),
	)
	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID", zap.Error(err), zap.String("movie_id", id.String()))
		return nil, fmt.Errorf("find movie by ID %s: %w", id, err)
	}
	return movie, nil
}

func (r *movieRepository) FindBySlug(ctx context.Context, slug string) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE slug = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, slug))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("find movie by slug %s: %w", slug, err)
	}
	return movie, nil
}

func (r *movieRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM movies WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2))`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check movie slug", zap.Error(err), zap.String("slug", slug))
		return false, fmt.Errorf("check movie slug %s: %w", slug, err)
	}
	return exists, nil
}

func movieWhere(filter MovieFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	} else if filter.PublishedOnly {
		conditions = append(conditions, fmt.Sprintf("status IN ('%s', '%s')",
			entity.MovieStatusNowShowing, entity.MovieStatusComingSoon))
	}

	if filter.Query != nil && strings.TrimSpace(*filter.Query) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Query)+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR director ILIKE $%d)", len(args), len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	where, args := movieWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM movies%s ORDER BY release_date DESC NULLS LAST, title LIMIT $%d OFFSET $%d`,
		movieColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		r.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}

	movies, err := collect(rows, scanMovie)
	if err != nil {
		return nil, fmt.Errorf("scan movies: %w", err)
	}
	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter MovieFilter) (int64, error) {
	where, args := movieWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return total, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, slug = $3, description = $4, poster_url = $5, trailer_url = $6,
		    duration_minutes = $7, rating = $8, genres = $9, release_date = $10, director = $11,
		    writers = $12, status = $13, content_rating = $14, updated_at = $15
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Slug,
		movie.Description,
		movie.PosterURL,
		movie.TrailerURL,
		movie.DurationMinutes,
		movie.Rating,
		nonNil(movie.Genres),
		movie.ReleaseDate,
		movie.Director,
		nonNil(movie.Writers),
		movie.Status,
		movie.ContentRating,
		movie.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "movies_slug_key") {
			return errMovieSlugTaken
		}
		r.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movie.ID.String()))
		return fmt.Errorf("update movie %s: %w", movie.ID, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("movie")
	}
	return nil
}

// Delete removes the movie along with its showtimes and their bookings.
func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", id.String()))
		return fmt.Errorf("delete movie %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("movie")
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}
