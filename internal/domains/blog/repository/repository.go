package repository

import (
	"context"

	"portfolio-backend/internal/domains/blog/model"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, filter model.BlogFilter) ([]*model.Blog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*model.Blog, error)
	Create(ctx context.Context, blog *model.Blog) (*model.Blog, error)
	// Update: publish lần đầu (isPublished=true) set published_at nếu chưa có
	Update(ctx context.Context, id uuid.UUID, req model.UpdateBlogRequest) (*model.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*model.BlogStats, error)
}
