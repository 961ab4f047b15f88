package repository

import (
	"context"
	"fmt"
	"strings"

	"portfolio-backend/internal/domains/media/model"
	"portfolio-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const mediaColumns = `id, filename, original_filename, mime_type, size, url, storage_key,
	thumbnail_url, alt_text, uploaded_by, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanMedia(row pgx.Row) (*model.Media, error) {
	var m model.Media
	err := row.Scan(
		&m.ID, &m.Filename, &m.OriginalFilename, &m.MimeType, &m.Size, &m.URL,
		&m.StorageKey, &m.ThumbnailURL, &m.AltText, &m.UploadedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func mapError(err error, op string) error {
	if database.IsNoRows(err) {
		return model.ErrMediaNotFound
	}
	return fmt.Errorf("%s media: %w", op, err)
}

// buildWhereClause: type khớp theo prefix, "image" → image/%
func buildWhereClause(filter model.MediaFilter) (string, []interface{}) {
	t := strings.ToLower(strings.TrimSpace(filter.Type))
	if t == "" {
		return "1=1", nil
	}
	if !strings.Contains(t, "/") {
		t += "/"
	}
	return `mime_type LIKE $1 ESCAPE '\'`, []interface{}{database.EscapeLike(t) + "%"}
}

func (r *postgresRepository) List(ctx context.Context, filter model.MediaFilter) ([]*model.Media, error) {
	where, args := buildWhereClause(filter)
	query := `SELECT ` + mediaColumns + ` FROM media WHERE ` + where + ` ORDER BY created_at DESC`
	return r.query(ctx, query, args...)
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...interface{}) ([]*model.Media, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	items := make([]*model.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Media, error) {
	m, err := scanMedia(r.pool.QueryRow(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "get")
	}
	return m, nil
}

func (r *postgresRepository) Create(ctx context.Context, m *model.Media) (*model.Media, error) {
	id := m.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `
		INSERT INTO media (id, filename, original_filename, mime_type, size, url, storage_key, alt_text, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + mediaColumns

	created, err := scanMedia(r.pool.QueryRow(ctx, query,
		id, m.Filename, m.OriginalFilename, m.MimeType, m.Size, m.URL, m.StorageKey, m.AltText, m.UploadedBy,
	))
	if err != nil {
		return nil, mapError(err, "create")
	}
	return created, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Media, error) {
	m, err := scanMedia(r.pool.QueryRow(ctx, `DELETE FROM media WHERE id = $1 RETURNING `+mediaColumns, id))
	if err != nil {
		return nil, mapError(err, "delete")
	}
	return m, nil
}

func (r *postgresRepository) SetThumbnail(ctx context.Context, id uuid.UUID, url string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE media SET thumbnail_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("set media thumbnail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMediaNotFound
	}
	return nil
}

func (r *postgresRepository) MarkThumbnailFailed(ctx context.Context, id uuid.UUID, reason string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE media SET thumbnail_failed_at = NOW(), thumbnail_error = $2 WHERE id = $1`, id, reason)
	if err != nil {
		return fmt.Errorf("mark media thumbnail failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMediaNotFound
	}
	return nil
}

func (r *postgresRepository) ListImagesWithoutThumbnail(ctx context.Context, limit int) ([]*model.Media, error) {
	query := `
		SELECT ` + mediaColumns + ` FROM media
		WHERE mime_type = ANY($2)
			AND storage_key IS NOT NULL
			AND thumbnail_url IS NULL
			AND thumbnail_failed_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1`
	return r.query(ctx, query, limit, model.ThumbnailMimeTypes)
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.MediaStats, error) {
	var s model.MediaStats
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(size), 0) FROM media`).Scan(&s.Total, &s.Bytes)
	if err != nil {
		return nil, fmt.Errorf("media stats: %w", err)
	}
	return &s, nil
}
