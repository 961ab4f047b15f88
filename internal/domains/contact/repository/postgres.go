package repository

import (
	"context"
	"fmt"

	"portfolio-backend/internal/domains/contact/model"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactColumns = `id, name, email, subject, message, is_read, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanContact(row pgx.Row) (*model.Contact, error) {
	var c model.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.IsRead, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func mapError(err error, op string) error {
	if database.IsNoRows(err) {
		return model.ErrContactNotFound
	}
	return fmt.Errorf("%s contact: %w", op, err)
}

func (r *postgresRepository) List(ctx context.Context, filter model.ContactFilter) ([]*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	args := []interface{}{}
	if filter.Read != nil {
		query += ` WHERE is_read = $1`
		args = append(args, *filter.Read)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*model.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return contacts, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Contact, error) {
	c, err := scanContact(r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "get")
	}
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, req model.CreateContactRequest) (*model.Contact, error) {
	query := `
		INSERT INTO contacts (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + contactColumns

	c, err := scanContact(r.pool.QueryRow(ctx, query, req.Name, req.Email, req.Subject, req.Message))
	if err != nil {
		return nil, mapError(err, "create")
	}
	return c, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateContactRequest) (*model.Contact, error) {
	query, args := database.NewUpdateBuilder("contacts").
		SetIf(req.Name != nil, "name", req.Name).
		SetIf(req.Email != nil, "email", req.Email).
		SetIf(req.Subject != nil, "subject", utils.EmptyToNil(req.Subject)).
		SetIf(req.Message != nil, "message", req.Message).
		SetIf(req.IsRead != nil, "is_read", req.IsRead).
		Build("id", id, contactColumns)

	c, err := scanContact(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "update")
	}
	return c, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContactNotFound
	}
	return nil
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.ContactStats, error) {
	var s model.ContactStats
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_read) FROM contacts`).Scan(&s.Total, &s.Unread)
	if err != nil {
		return nil, fmt.Errorf("contact stats: %w", err)
	}
	return &s, nil
}
