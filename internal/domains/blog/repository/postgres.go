package repository

import (
	"context"
	"fmt"
	"strings"

	"portfolio-backend/internal/domains/blog/model"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const blogColumns = `id, title, slug, excerpt, content, cover_image, meta_title, meta_description,
	meta_keywords, is_published, published_at, author_id, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanBlog(row pgx.Row) (*model.Blog, error) {
	var b model.Blog
	err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.CoverImage,
		&b.MetaTitle, &b.MetaDescription, &b.MetaKeywords, &b.IsPublished,
		&b.PublishedAt, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func mapError(err error, op string) error {
	switch {
	case database.IsNoRows(err):
		return model.ErrBlogNotFound
	case database.IsUniqueViolation(err):
		return model.ErrBlogSlugExists.Wrap(err)
	default:
		return fmt.Errorf("%s blog: %w", op, err)
	}
}

// buildWhereClause build WHERE + args từ filter
func buildWhereClause(filter model.BlogFilter) (string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.Published != nil {
		conditions = append(conditions, fmt.Sprintf("is_published = $%d", argIndex))
		args = append(args, *filter.Published)
		argIndex++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR excerpt ILIKE $%d ESCAPE '\')`, argIndex, argIndex))
		args = append(args, database.ContainsPattern(filter.Search))
	}

	return strings.Join(conditions, " AND "), args
}

func (r *postgresRepository) List(ctx context.Context, filter model.BlogFilter) ([]*model.Blog, error) {
	where, args := buildWhereClause(filter)
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE ` + where + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]*model.Blog, 0)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return blogs, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "get")
	}
	return b, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE slug = $1`, slug))
	if err != nil {
		return nil, mapError(err, "get")
	}
	return b, nil
}

func (r *postgresRepository) Create(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	query := `
		INSERT INTO blogs (title, slug, excerpt, content, cover_image, meta_title,
			meta_description, meta_keywords, is_published, published_at, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + blogColumns

	b, err := scanBlog(r.pool.QueryRow(ctx, query,
		blog.Title, blog.Slug, blog.Excerpt, blog.Content, blog.CoverImage, blog.MetaTitle,
		blog.MetaDescription, blog.MetaKeywords, blog.IsPublished, blog.PublishedAt, blog.AuthorID,
	))
	if err != nil {
		return nil, mapError(err, "create")
	}
	return b, nil
}

// buildUpdateQuery tách riêng để test SQL sinh ra
func buildUpdateQuery(id uuid.UUID, req model.UpdateBlogRequest) (string, []interface{}) {
	b := database.NewUpdateBuilder("blogs").
		SetIf(req.Title != nil, "title", req.Title).
		SetIf(req.Slug != nil, "slug", req.Slug).
		SetIf(req.Excerpt != nil, "excerpt", utils.EmptyToNil(req.Excerpt)).
		SetIf(req.Content != nil, "content", req.Content).
		SetIf(req.CoverImage != nil, "cover_image", utils.EmptyToNil(req.CoverImage)).
		SetIf(req.MetaTitle != nil, "meta_title", utils.EmptyToNil(req.MetaTitle)).
		SetIf(req.MetaDescription != nil, "meta_description", utils.EmptyToNil(req.MetaDescription)).
		SetIf(req.MetaKeywords != nil, "meta_keywords", utils.EmptyToNil(req.MetaKeywords)).
		SetIf(req.IsPublished != nil, "is_published", req.IsPublished)

	// Unpublish giữ nguyên published_at
	if req.IsPublished != nil && *req.IsPublished {
		b.SetExpr("published_at", "COALESCE(published_at, NOW())")
	}

	return b.Build("id", id, blogColumns)
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateBlogRequest) (*model.Blog, error) {
	query, args := buildUpdateQuery(id, req)

	b, err := scanBlog(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "update")
	}
	return b, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.BlogStats, error) {
	var s model.BlogStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_published) FROM blogs`,
	).Scan(&s.Total, &s.Published)
	if err != nil {
		return nil, fmt.Errorf("blog stats: %w", err)
	}
	return &s, nil
}
