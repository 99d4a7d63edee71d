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

type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	FindAll(ctx context.Context, status *entity.ContactStatus, limit, offset int) ([]*entity.Contact, error)
	CountAll(ctx context.Context, status *entity.ContactStatus) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewContactRepository(db database.PgxIface, log *zap.Logger) ContactRepository {
	return &contactRepository{
		db:  db,
		log: log.With(zap.String("repository", "contact")),
	}
}

const contactColumns = `id, user_id, name, email, phone, subject, message, status, created_at, updated_at`

func scanContact(row scanner) (*entity.Contact, error) {
	var c entity.Contact
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Subject,
		&c.Message,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, user_id, name, email, phone, subject, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		contact.ID,
		contact.UserID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Subject,
		contact.Message,
		contact.Status,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create contact", zap.Error(err), zap.String("email", contact.Email))
		return fmt.Errorf("create contact from %s: %w", contact.Email, err)
	}

	return nil
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	contact, err := scanContact(r.db.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find contact by ID", zap.Error(err), zap.String("contact_id", id.String()))
		return nil, fmt.Errorf("find contact by ID %s: %w", id, err)
	}
	return contact, nil
}

func contactWhere(status *entity.ContactStatus) (string, []any) {
	if status == nil {
		return "", nil
	}
	return ` WHERE status = $1`, []any{string(*status)}
}

func (r *contactRepository) FindAll(ctx context.Context, status *entity.ContactStatus, limit, offset int) ([]*entity.Contact, error) {
	where, args := contactWhere(status)
	query := fmt.Sprintf(`SELECT %s FROM contacts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		contactColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		r.log.Error("Failed to list contacts", zap.Error(err))
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	contacts, err := collect(rows, scanContact)
	if err != nil {
		return nil, fmt.Errorf("scan contacts: %w", err)
	}
	return contacts, nil
}

func (r *contactRepository) CountAll(ctx context.Context, status *entity.ContactStatus) (int64, error) {
	where, args := contactWhere(status)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count contacts", zap.Error(err))
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return total, nil
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE contacts SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		r.log.Error("Failed to update contact status",
			zap.Error(err),
			zap.String("contact_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update contact %s status: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("contact")
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete contact", zap.Error(err), zap.String("contact_id", id.String()))
		return fmt.Errorf("delete contact %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFound("contact")
	}
	return nil
}
