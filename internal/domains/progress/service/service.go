package service

import (
	"context"
	"time"

	bookmodel "portfolio-backend/internal/domains/book/model"
	"portfolio-backend/internal/domains/progress/model"
	"portfolio-backend/internal/domains/progress/repository"

	"github.com/google/uuid"
)

// BookLookup là phần của book service cần để kiểm tra sách tồn tại
type BookLookup interface {
	GetBook(ctx context.Context, id uuid.UUID, canWrite bool) (*bookmodel.Book, error)
}

type ServiceInterface interface {
	GetProgress(ctx context.Context, readerID, bookID uuid.UUID) (*model.Progress, error)
	// SaveProgress: canWrite cho phép lưu tiến độ của bản nháp
	SaveProgress(ctx context.Context, readerID, bookID uuid.UUID, canWrite bool, req model.SaveProgressRequest) (*model.Progress, error)
}

type progressService struct {
	repo  repository.Repository
	books BookLookup
	now   func() time.Time
}

func NewProgressService(repo repository.Repository, books BookLookup) ServiceInterface {
	return &progressService{repo: repo, books: books, now: time.Now}
}

func (s *progressService) GetProgress(ctx context.Context, readerID, bookID uuid.UUID) (*model.Progress, error) {
	p, err := s.repo.Get(ctx, readerID, bookID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &model.Progress{BookID: bookID, Page: model.DefaultPage}, nil
	}
	return p, nil
}

func (s *progressService) SaveProgress(ctx context.Context, readerID, bookID uuid.UUID, canWrite bool, req model.SaveProgressRequest) (*model.Progress, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.books.GetBook(ctx, bookID, canWrite); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p := model.Progress{BookID: bookID, Page: req.Page, UpdatedAt: &now}
	if err := s.repo.Save(ctx, readerID, p); err != nil {
		return nil, err
	}
	return &p, nil
}
