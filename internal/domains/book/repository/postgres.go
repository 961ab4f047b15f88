package repository

import (
	"context"
	"fmt"
	"strings"

	"portfolio-backend/internal/domains/book/model"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, author, description, cover_url, file_url, category,
	is_published, download_count, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.CoverURL, &b.FileURL,
		&b.Category, &b.IsPublished, &b.DownloadCount, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func mapError(err error, op string) error {
	if database.IsNoRows(err) {
		return model.ErrBookNotFound
	}
	return fmt.Errorf("%s book: %w", op, err)
}

// buildWhereClause build WHERE + args từ filter
func buildWhereClause(filter model.BookFilter) (string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.Published != nil {
		conditions = append(conditions, fmt.Sprintf("is_published = $%d", argIndex))
		args = append(args, *filter.Published)
		argIndex++
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(category) = LOWER($%d)", argIndex))
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR author ILIKE $%d ESCAPE '\')`, argIndex, argIndex))
		args = append(args, database.ContainsPattern(filter.Search))
	}

	return strings.Join(conditions, " AND "), args
}

func (r *postgresRepository) List(ctx context.Context, filter model.BookFilter) ([]*model.Book, error) {
	where, args := buildWhereClause(filter)
	query := `SELECT ` + bookColumns + ` FROM books WHERE ` + where + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]*model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get")
	}
	return b, nil
}

func (r *postgresRepository) Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	isPublished := req.IsPublished != nil && *req.IsPublished

	query := `
		INSERT INTO books (title, author, description, cover_url, file_url, category, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bookColumns

	b, err := scanBook(r.pool.QueryRow(ctx, query,
		req.Title, req.Author, req.Description, req.CoverURL, req.FileURL, req.Category, isPublished,
	))
	if err != nil {
		return nil, mapError(err, "create")
	}
	return b, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	query, args := database.NewUpdateBuilder("books").
		SetIf(req.Title != nil, "title", req.Title).
		SetIf(req.Author != nil, "author", req.Author).
		SetIf(req.Description != nil, "description", utils.EmptyToNil(req.Description)).
		SetIf(req.CoverURL != nil, "cover_url", utils.EmptyToNil(req.CoverURL)).
		SetIf(req.FileURL != nil, "file_url", utils.EmptyToNil(req.FileURL)).
		SetIf(req.Category != nil, "category", utils.EmptyToNil(req.Category)).
		SetIf(req.IsPublished != nil, "is_published", req.IsPublished).
		Build("id", id, bookColumns)

	b, err := scanBook(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "update")
	}
	return b, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) IncrementDownload(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `
		UPDATE books SET download_count = download_count + 1
		WHERE id = $1 AND is_published = TRUE
		RETURNING ` + bookColumns

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "increment download")
	}
	return b, nil
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.BookStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_published),
		       COALESCE(SUM(download_count), 0)
		FROM books`

	var s model.BookStats
	if err := r.pool.QueryRow(ctx, query).Scan(&s.Total, &s.Published, &s.Downloads); err != nil {
		return nil, fmt.Errorf("book stats: %w", err)
	}
	return &s, nil
}
