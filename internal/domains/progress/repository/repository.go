package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-backend/internal/domains/progress/model"
	"portfolio-backend/pkg/kvstore"

	"github.com/google/uuid"
)

// Repository lưu tiến độ đọc trong kvstore (Redis), không có bảng SQL
type Repository interface {
	// Get trả về nil, nil khi chưa có dữ liệu
	Get(ctx context.Context, readerID, bookID uuid.UUID) (*model.Progress, error)
	Save(ctx context.Context, readerID uuid.UUID, p model.Progress) error
}

type kvRepository struct {
	store kvstore.Store
	ttl   time.Duration
}

func NewKVRepository(store kvstore.Store, ttl time.Duration) Repository {
	return &kvRepository{store: store, ttl: ttl}
}

// Key: reader:<readerId>:book-progress-<bookId>
func Key(readerID, bookID uuid.UUID) string {
	return fmt.Sprintf("reader:%s:book-progress-%s", readerID, bookID)
}

func (r *kvRepository) Get(ctx context.Context, readerID, bookID uuid.UUID) (*model.Progress, error) {
	var p model.Progress
	err := r.store.Get(ctx, Key(readerID, bookID), &p)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reading progress: %w", err)
	}
	return &p, nil
}

func (r *kvRepository) Save(ctx context.Context, readerID uuid.UUID, p model.Progress) error {
	if err := r.store.Set(ctx, Key(readerID, p.BookID), p, r.ttl); err != nil {
		return fmt.Errorf("save reading progress: %w", err)
	}
	return nil
}
