package service

import (
	"context"
	"strings"

	"portfolio-backend/internal/domains/book/model"
	"portfolio-backend/internal/domains/book/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ServiceInterface interface {
	// canWrite = người gọi có content:write, false thì chỉ thấy sách đã publish
	ListBooks(ctx context.Context, filter model.BookFilter, canWrite bool) ([]*model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID, canWrite bool) (*model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	RecordDownload(ctx context.Context, id uuid.UUID) (*model.DownloadResponse, error)
	Stats(ctx context.Context) (*model.BookStats, error)
}

type bookService struct {
	repo repository.Repository
}

func NewBookService(repo repository.Repository) ServiceInterface {
	return &bookService{repo: repo}
}

func (s *bookService) ListBooks(ctx context.Context, filter model.BookFilter, canWrite bool) ([]*model.Book, error) {
	if !canWrite {
		published := true
		filter.Published = &published
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)

	return s.repo.List(ctx, filter)
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID, canWrite bool) (*model.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Bản nháp không tồn tại với public
	if !b.IsPublished && !canWrite {
		return nil, model.ErrBookNotFound
	}
	return b, nil
}

func (s *bookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("book_id", b.ID.String()).Str("title", b.Title).Msg("Book created")
	return b, nil
}

func (s *bookService) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, model.ErrNoChanges
	}

	return s.repo.Update(ctx, id, req)
}

func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("book_id", id.String()).Msg("Book deleted")
	return nil
}

func (s *bookService) RecordDownload(ctx context.Context, id uuid.UUID) (*model.DownloadResponse, error) {
	b, err := s.repo.IncrementDownload(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.DownloadResponse{
		ID:            b.ID,
		DownloadCount: b.DownloadCount,
		FileURL:       b.FileURL,
	}, nil
}

func (s *bookService) Stats(ctx context.Context) (*model.BookStats, error) {
	return s.repo.Stats(ctx)
}
