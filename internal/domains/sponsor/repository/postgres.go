package repository

import (
	"context"
	"fmt"

	"portfolio-backend/internal/domains/sponsor/model"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sponsorColumns = `id, name, logo_url, website_url, description, is_active,
	display_order, click_count, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanSponsor(row pgx.Row) (*model.Sponsor, error) {
	var s model.Sponsor
	err := row.Scan(
		&s.ID, &s.Name, &s.LogoURL, &s.WebsiteURL, &s.Description, &s.IsActive,
		&s.DisplayOrder, &s.ClickCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func mapError(err error, op string) error {
	if database.IsNoRows(err) {
		return model.ErrSponsorNotFound
	}
	return fmt.Errorf("%s sponsor: %w", op, err)
}

func (r *postgresRepository) List(ctx context.Context, filter model.SponsorFilter) ([]*model.Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors`
	args := []interface{}{}
	if filter.Active != nil {
		query += ` WHERE is_active = $1`
		args = append(args, *filter.Active)
	}
	query += ` ORDER BY display_order ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sponsors: %w", err)
	}
	defer rows.Close()

	sponsors := make([]*model.Sponsor, 0)
	for rows.Next() {
		s, err := scanSponsor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sponsor: %w", err)
		}
		sponsors = append(sponsors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return sponsors, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Sponsor, error) {
	s, err := scanSponsor(r.pool.QueryRow(ctx, `SELECT `+sponsorColumns+` FROM sponsors WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "get")
	}
	return s, nil
}

func (r *postgresRepository) Create(ctx context.Context, req model.CreateSponsorRequest) (*model.Sponsor, error) {
	isActive := req.IsActive == nil || *req.IsActive
	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}

	query := `
		INSERT INTO sponsors (name, logo_url, website_url, description, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + sponsorColumns

	s, err := scanSponsor(r.pool.QueryRow(ctx, query,
		req.Name, req.LogoURL, req.WebsiteURL, req.Description, isActive, displayOrder,
	))
	if err != nil {
		return nil, mapError(err, "create")
	}
	return s, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateSponsorRequest) (*model.Sponsor, error) {
	query, args := database.NewUpdateBuilder("sponsors").
		SetIf(req.Name != nil, "name", req.Name).
		SetIf(req.LogoURL != nil, "logo_url", utils.EmptyToNil(req.LogoURL)).
		SetIf(req.WebsiteURL != nil, "website_url", utils.EmptyToNil(req.WebsiteURL)).
		SetIf(req.Description != nil, "description", utils.EmptyToNil(req.Description)).
		SetIf(req.IsActive != nil, "is_active", req.IsActive).
		SetIf(req.DisplayOrder != nil, "display_order", req.DisplayOrder).
		Build("id", id, sponsorColumns)

	s, err := scanSponsor(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "update")
	}
	return s, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sponsors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sponsor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSponsorNotFound
	}
	return nil
}

func (r *postgresRepository) IncrementClick(ctx context.Context, id uuid.UUID) (*model.Sponsor, error) {
	query := `
		UPDATE sponsors SET click_count = click_count + 1
		WHERE id = $1 AND is_active = TRUE
		RETURNING ` + sponsorColumns

	s, err := scanSponsor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "increment click")
	}
	return s, nil
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.SponsorStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COALESCE(SUM(click_count), 0)
		FROM sponsors`

	var s model.SponsorStats
	if err := r.pool.QueryRow(ctx, query).Scan(&s.Total, &s.Active, &s.Clicks); err != nil {
		return nil, fmt.Errorf("sponsor stats: %w", err)
	}
	return &s, nil
}
