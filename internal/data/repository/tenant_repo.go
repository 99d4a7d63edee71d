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

type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	// FindOrCreateDefault returns the system-default tenant, creating it on first use.
	FindOrCreateDefault(ctx context.Context) (*entity.Tenant, error)
}

type tenantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTenantRepository(db database.PgxIface, log *zap.Logger) TenantRepository {
	return &tenantRepository{
		db:  db,
		log: log.With(zap.String("repository", "tenant")),
	}
}

const tenantColumns = `id, name, domain, subscription_status, config, is_default, created_at, updated_at`

func scanTenant(row scanner) (*entity.Tenant, error) {
	var t entity.Tenant
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Domain,
		&t.SubscriptionStatus,
		&t.Config,
		&t.IsDefault,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tenantRepository) Create(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, domain, subscription_status, config, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Domain,
		tenant.SubscriptionStatus,
		tenantConfig(tenant),
		tenant.IsDefault,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "tenants_domain_key") {
			return utils.NewValidationError("validation failed", map[string]string{"domain": "Domain already in use"})
		}
		r.log.Error("Failed to create tenant", zap.Error(err), zap.String("name", tenant.Name))
		return fmt.Errorf("create tenant %s: %w", tenant.Name, err)
	}

	return nil
}

func (r *tenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	tenant, err := scanTenant(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tenant", zap.Error(err), zap.String("tenant_id", id.String()))
		return nil, fmt.Errorf("find tenant by ID %s: %w", id, err)
	}

	return tenant, nil
}

func (r *tenantRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list tenants", zap.Error(err))
		return nil, fmt.Errorf("list tenants: %w", err)
	}

	tenants, err := collect(rows, scanTenant)
	if err != nil {
		return nil, fmt.Errorf("scan tenants: %w", err)
	}
	return tenants, nil
}

func (r *tenantRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&total); err != nil {
		r.log.Error("Failed to count tenants", zap.Error(err))
		return 0, fmt.Errorf("count tenants: %w", err)
	}
	return total, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, domain = $3, subscription_status = $4, config = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Domain,
		tenant.SubscriptionStatus,
		tenantConfig(tenant),
		tenant.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "tenants_domain_key") {
			return utils.NewValidationError("validation failed", map[string]string{"domain": "Domain already in use"})
		}
		r.log.Error("Failed to update tenant", zap.Error(err), zap.String("tenant_id", tenant.ID.String()))
		return fmt.Errorf("update tenant %s: %w", tenant.ID, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("tenant")
	}
	return nil
}

func (r *tenantRepository) FindOrCreateDefault(ctx context.Context) (*entity.Tenant, error) {
	// concurrent callers race on the partial unique index, the loser reads the winner's row
	insert := `
		INSERT INTO tenants (id, name, subscription_status, config, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, '{}'::jsonb, TRUE, NOW(), NOW())
		ON CONFLICT (is_default) WHERE is_default DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert, uuid.New(), entity.DefaultTenantName, entity.SubscriptionActive); err != nil {
		r.log.Error("Failed to ensure default tenant", zap.Error(err))
		return nil, fmt.Errorf("ensure default tenant: %w", err)
	}

	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE is_default`
	tenant, err := scanTenant(r.db.QueryRow(ctx, query))
	if err != nil {
		r.log.Error("Failed to load default tenant", zap.Error(err))
		return nil, fmt.Errorf("load default tenant: %w", err)
	}

	return tenant, nil
}

func tenantConfig(t *entity.Tenant) map[string]any {
	if t.Config == nil {
		return map[string]any{}
	}
	return t.Config
}
