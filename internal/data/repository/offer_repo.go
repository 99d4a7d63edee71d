package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Offer, error)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	// FindAll lists offers; availableOnly keeps active, unexpired ones.
	FindAll(ctx context.Context, availableOnly bool, limit, offset int) ([]*entity.Offer, error)
	CountAll(ctx context.Context, availableOnly bool) (int64, error)
	Update(ctx context.Context, offer *entity.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type offerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOfferRepository(db database.PgxIface, log *zap.Logger) OfferRepository {
	return &offerRepository{
		db:  db,
		log: log.With(zap.String("repository", "offer")),
	}
}

const offerColumns = `id, title, slug, description, image_url, discount_code, discount_percentage,
	expires_at, is_active, created_at, updated_at`

const offerAvailable = ` WHERE is_active AND (expires_at IS NULL OR expires_at > NOW())`

var errOfferSlugTaken = utils.NewValidationError("validation failed", map[string]string{"slug": "Slug already in use"})

func scanOffer(row scanner) (*entity.Offer, error) {
	var o entity.Offer
	if err := row.Scan(
		&o.ID,
		&o.Title,
		&o.Slug,
		&o.Description,
		&o.ImageURL,
		&o.DiscountCode,
		&o.DiscountPercentage,
		&o.ExpiresAt,
		&o.IsActive,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	query := `
		INSERT INTO offers (id, title, slug, description, image_url, discount_code, discount_percentage,
			expires_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		offer.ID,
		offer.Title,
		offer.Slug,
		offer.Description,
		offer.ImageURL,
		offer.DiscountCode,
		offer.DiscountPercentage,
		offer.ExpiresAt,
		offer.IsActive,
		offer.CreatedAt,
		offer.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "offers_slug_key") {
			return errOfferSlugTaken
		}
		r.log.Error("Failed to create offer", zap.Error(err), zap.String("title", offer.Title))
		return fmt.Errorf("create offer %s: %w", offer.Title, err)
	}

	return nil
}

func (r *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	offer, err := scanOffer(r.db.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find offer by ID", zap.Error(err), zap.String("offer_id", id.String()))
		return nil, fmt.Errorf("find offer by ID %s: %w", id, err)
	}
	return offer, nil
}

func (r *offerRepository) FindBySlug(ctx context.Context, slug string) (*entity.Offer, error) {
	offer, err := scanOffer(r.db.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE slug = $1`, slug))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find offer by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("find offer by slug %s: %w", slug, err)
	}
	return offer, nil
}

func (r *offerRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM offers WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2))`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check offer slug", zap.Error(err), zap.String("slug", slug))
		return false, fmt.Errorf("check offer slug %s: %w", slug, err)
	}
	return exists, nil
}

func offerWhere(availableOnly bool) string {
	if availableOnly {
		return offerAvailable
	}
	return ""
}

func (r *offerRepository) FindAll(ctx context.Context, availableOnly bool, limit, offset int) ([]*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers` + offerWhere(availableOnly) +
		` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list offers", zap.Error(err))
		return nil, fmt.Errorf("list offers: %w", err)
	}

	offers, err := collect(rows, scanOffer)
	if err != nil {
		return nil, fmt.Errorf("scan offers: %w", err)
	}
	return offers, nil
}

func (r *offerRepository) CountAll(ctx context.Context, availableOnly bool) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM offers`+offerWhere(availableOnly)).Scan(&total); err != nil {
		r.log.Error("Failed to count offers", zap.Error(err))
		return 0, fmt.Errorf("count offers: %w", err)
	}
	return total, nil
}

func (r *offerRepository) Update(ctx context.Context, offer *entity.Offer) error {
	query := `
		UPDATE offers
		SET title = $2, slug = $3, description = $4, image_url = $5, discount_code = $6,
		    discount_percentage = $7, expires_at = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		offer.ID,
		offer.Title,
		offer.Slug,
		offer.Description,
		offer.ImageURL,
		offer.DiscountCode,
		offer.DiscountPercentage,
		offer.ExpiresAt,
		offer.IsActive,
		offer.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "offers_slug_key") {
			return errOfferSlugTaken
		}
		r.log.Error("Failed to update offer", zap.Error(err), zap.String("offer_id", offer.ID.String()))
		return fmt.Errorf("update offer %s: %w", offer.ID, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("offer")
	}
	return nil
}

func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete offer", zap.Error(err), zap.String("offer_id", id.String()))
		return fmt.Errorf("delete offer %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("offer")
	}
	return nil
}
