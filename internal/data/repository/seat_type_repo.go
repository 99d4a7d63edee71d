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

type SeatTypeRepository interface {
	Create(ctx context.Context, seatType *entity.SeatType) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SeatType, error)
	FindAll(ctx context.Context, tenantID *uuid.UUID, limit, offset int) ([]*entity.SeatType, error)
	CountAll(ctx context.Context, tenantID *uuid.UUID) (int64, error)
	Update(ctx context.Context, seatType *entity.SeatType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type seatTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatTypeRepository(db database.PgxIface, log *zap.Logger) SeatTypeRepository {
	return &seatTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_type")),
	}
}

const seatTypeColumns = `id, tenant_id, name, price_multiplier, created_at, updated_at`

var errSeatTypeNameTaken = utils.NewValidationError("validation failed", map[string]string{"name": "Seat type name already exists for this tenant"})

func scanSeatType(row scanner) (*entity.SeatType, error) {
	var st entity.SeatType
	if err := row.Scan(
		&st.ID,
		&st.TenantID,
		&st.Name,
		&st.PriceMultiplier,
		&st.CreatedAt,
		&st.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *seatTypeRepository) Create(ctx context.Context, seatType *entity.SeatType) error {
	query := `
		INSERT INTO seat_types (id, tenant_id, name, price_multiplier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		seatType.ID,
		seatType.TenantID,
		seatType.Name,
		seatType.PriceMultiplier,
		seatType.CreatedAt,
		seatType.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "seat_types_tenant_name_key") {
			return errSeatTypeNameTaken
		}
		if database.IsForeignKeyViolation(err) {
			return utils.NewValidationError("validation failed", map[string]string{"tenant_id": "Tenant does not exist"})
		}
		r.log.Error("Failed to create seat type", zap.Error(err), zap.String("name", seatType.Name))
		return fmt.Errorf("create seat type %s: %w", seatType.Name, err)
	}

	return nil
}

func (r *seatTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SeatType, error) {
	query := `SELECT ` + seatTypeColumns + ` FROM seat_types WHERE id = $1`

	seatType, err := scanSeatType(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat type", zap.Error(err), zap.String("seat_type_id", id.String()))
		return nil, fmt.Errorf("find seat type by ID %s: %w", id, err)
	}
	return seatType, nil
}

func seatTypeFilter(tenantID *uuid.UUID) (string, []any) {
	if tenantID == nil {
		return "", nil
	}
	return ` WHERE tenant_id = $1`, []any{*tenantID}
}

func (r *seatTypeRepository) FindAll(ctx context.Context, tenantID *uuid.UUID, limit, offset int) ([]*entity.SeatType, error) {
	where, args := seatTypeFilter(tenantID)
	query := fmt.Sprintf(`SELECT %s FROM seat_types%s ORDER BY name LIMIT $%d OFFSET $%d`,
		seatTypeColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		r.log.Error("Failed to list seat types", zap.Error(err))
		return nil, fmt.Errorf("list seat types: %w", err)
	}

	seatTypes, err := collect(rows, scanSeatType)
	if err != nil {
		return nil, fmt.Errorf("scan seat types: %w", err)
	}
	return seatTypes, nil
}

func (r *seatTypeRepository) CountAll(ctx context.Context, tenantID *uuid.UUID) (int64, error) {
	where, args := seatTypeFilter(tenantID)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM seat_types`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count seat types", zap.Error(err))
		return 0, fmt.Errorf("count seat types: %w", err)
	}
	return total, nil
}

func (r *seatTypeRepository) Update(ctx context.Context, seatType *entity.SeatType) error {
	query := `UPDATE seat_types SET name = $2, price_multiplier = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, seatType.ID, seatType.Name, seatType.PriceMultiplier, seatType.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "seat_types_tenant_name_key") {
			return errSeatTypeNameTaken
		}
		r.log.Error("Failed to update seat type", zap.Error(err), zap.String("seat_type_id", seatType.ID.String()))
		return fmt.Errorf("update seat type %s: %w", seatType.ID, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("seat type")
	}
	return nil
}

// Delete leaves seats in place with no type (ON DELETE SET NULL).
func (r *seatTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM seat_types WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete seat type", zap.Error(err), zap.String("seat_type_id", id.String()))
		return fmt.Errorf("delete seat type %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("seat type")
	}
	return nil
}
