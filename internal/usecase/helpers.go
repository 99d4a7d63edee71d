package usecase

import (
	"context"
	"time"

	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
)

// parseID turns a malformed path id into NotFound so handlers answer 404.
func parseID(raw, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, utils.NotFound(entity)
	}
	return id, nil
}

// parseFieldID parses a required id from a request body.
func parseFieldID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, utils.NewValidationError("validation failed", map[string]string{field: "Must be a valid UUID"})
	}
	return id, nil
}

func parseOptionalID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, utils.NewValidationError("validation failed", map[string]string{field: "Must be a valid UUID"})
	}
	return &id, nil
}

const maxSlugAttempts = 50

// uniqueSlug derives a slug from title and appends -2, -3, ... until exists
// reports it free.
func uniqueSlug(ctx context.Context, title, fallback string, exists func(ctx context.Context, slug string) (bool, error)) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = fallback
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := utils.SlugCandidate(base, attempt)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return base + "-" + uuid.NewString()[:8], nil
}

func parseDate(raw *string, field string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *raw)
	if err != nil {
		return nil, utils.NewValidationError("validation failed", map[string]string{field: "Must match format 2006-01-02"})
	}
	return &t, nil
}
