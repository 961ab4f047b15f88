package repository

import (
	"context"

	"portfolio-backend/internal/domains/media/model"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, filter model.MediaFilter) ([]*model.Media, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Media, error)
	Create(ctx context.Context, m *model.Media) (*model.Media, error)
	// Delete trả về row đã xóa để caller dọn object trong storage
	Delete(ctx context.Context, id uuid.UUID) (*model.Media, error)
	SetThumbnail(ctx context.Context, id uuid.UUID, url string) error
	// MarkThumbnailFailed đánh dấu ảnh không decode được, backfill bỏ qua
	MarkThumbnailFailed(ctx context.Context, id uuid.UUID, reason string) error
	// ListImagesWithoutThumbnail dùng cho job backfill, chỉ lấy định dạng trong model.ThumbnailMimeTypes
	ListImagesWithoutThumbnail(ctx context.Context, limit int) ([]*model.Media, error)
	Stats(ctx context.Context) (*model.MediaStats, error)
}
