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

type MovieService interface {
	// GetMovies lists movies; publishedOnly hides drafts from the public catalog.
	GetMovies(ctx context.Context, req *request.PaginatedRequest, filter *request.MovieFilterRequest, publishedOnly bool) (*response.PaginatedResponse[response.MovieResponse], error)
	// GetMovie accepts either an id or a slug.
	GetMovie(ctx context.Context, idOrSlug string, publishedOnly bool) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	notifier Notifier,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest, filter *request.MovieFilterRequest, publishedOnly bool) (*response.PaginatedResponse[response.MovieResponse], error) {
	repoFilter := repository.MovieFilter{PublishedOnly: publishedOnly}
	if filter != nil {
		if err := utils.Validate(filter); err != nil {
			return nil, err
		}
		if filter.Status != nil {
			status := entity.MovieStatus(*filter.Status)
			if publishedOnly && !status.Published() {
				return nil, utils.NewValidationError("validation failed", map[string]string{
					"status": "Must be one of: now_showing, coming_soon",
				})
			}
			repoFilter.Status = &status
		}
		repoFilter.Query = filter.Query
	}

	movies, err := s.repo.Movie.FindAll(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Bool("published_only", publishedOnly),
	)

	return response.NewPaginatedResponse(response.MoviesToResponse(movies), req.Page, req.Limit(), total), nil
}

func (s *movieService) GetMovie(ctx context.Context, idOrSlug string, publishedOnly bool) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if publishedOnly && !movie.Status.Published() {
		return nil, utils.NotFound("movie")
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) findMovie(ctx context.Context, idOrSlug string) (*entity.Movie, error) {
	var (
		movie *entity.Movie
		err   error
	)
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		movie, err = s.repo.Movie.FindByID(ctx, id)
	} else {
		movie, err = s.repo.Movie.FindBySlug(ctx, strings.ToLower(idOrSlug))
	}
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", idOrSlug, err)
	}
	if movie == nil {
		return nil, utils.NotFound("movie")
	}
	return movie, nil
}

func (s *movieService) slugFor(ctx context.Context, title string, excludeID *uuid.UUID) (string, error) {
	return uniqueSlug(ctx, title, "movie", func(ctx context.Context, slug string) (bool, error) {
		return s.repo.Movie.SlugExists(ctx, slug, excludeID)
	})
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Create movie validation failed", zap.Error(err))
		return nil, err
	}

	releaseDate, err := parseDate(req.ReleaseDate, "release_date")
	if err != nil {
		return nil, err
	}

	slug, err := s.slugFor(ctx, req.Title, nil)
	if err != nil {
		return nil, fmt.Errorf("generate slug: %w", err)
	}

	movie := &entity.Movie{
		Base:            entity.NewBase(),
		Title:           strings.TrimSpace(req.Title),
		Slug:            slug,
		Description:     req.Description,
		PosterURL:       req.PosterURL,
		TrailerURL:      req.TrailerURL,
		DurationMinutes: req.DurationMinutes,
		Rating:          req.Rating.Round(1),
		Genres:          req.Genres,
		ReleaseDate:     releaseDate,
		Director:        req.Director,
		Writers:         req.Writers,
		Status:          entity.MovieStatus(req.Status),
		ContentRating:   req.ContentRating,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, err
	}

	if movie.Status.Published() {
		s.notifier.MoviePublished(ctx, movie)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Update movie validation failed", zap.Error(err))
		return nil, err
	}

	id, err := parseID(movieID, "movie")
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", id, err)
	}
	if movie == nil {
		return nil, utils.NotFound("movie")
	}
	wasPublished := movie.Status.Published()

	if req.Title != nil && strings.TrimSpace(*req.Title) != movie.Title {
		movie.Title = strings.TrimSpace(*req.Title)
		if movie.Slug, err = s.slugFor(ctx, movie.Title, &movie.ID); err != nil {
			return nil, fmt.Errorf("generate slug: %w", err)
		}
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
	}
	if req.TrailerURL != nil {
		movie.TrailerURL = req.TrailerURL
	}
	if req.DurationMinutes != nil {
		movie.DurationMinutes = *req.DurationMinutes
	}
	if req.Rating != nil {
		movie.Rating = req.Rating.Round(1)
	}
	if req.Genres != nil {
		movie.Genres = req.Genres
	}
	if req.ReleaseDate != nil {
		if movie.ReleaseDate, err = parseDate(req.ReleaseDate, "release_date"); err != nil {
			return nil, err
		}
	}
	if req.Director != nil {
		movie.Director = req.Director
	}
	if req.Writers != nil {
		movie.Writers = req.Writers
	}
	if req.Status != nil {
		movie.Status = entity.MovieStatus(*req.Status)
	}
	if req.ContentRating != nil {
		movie.ContentRating = req.ContentRating
	}

	movie.Touch()
	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, err
	}

	if !wasPublished && movie.Status.Published() {
		s.notifier.MoviePublished(ctx, movie)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := parseID(movieID, "movie")
	if err != nil {
		return err
	}
	return s.repo.Movie.Delete(ctx, id)
}
