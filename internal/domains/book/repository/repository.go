package repository

import (
	"context"

	"portfolio-backend/internal/domains/book/model"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, filter model.BookFilter) ([]*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementDownload tăng download_count atomic, chỉ với sách đã publish
	IncrementDownload(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Stats(ctx context.Context) (*model.BookStats, error)
}
