package service

import (
	"context"
	"strings"
	"time"

	"portfolio-backend/internal/domains/blog/model"
	"portfolio-backend/internal/domains/blog/repository"
	"portfolio-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ServiceInterface interface {
	ListBlogs(ctx context.Context, filter model.BlogFilter, canWrite bool) ([]*model.Blog, error)
	GetBlog(ctx context.Context, id uuid.UUID, canWrite bool) (*model.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string, canWrite bool) (*model.Blog, error)
	CreateBlog(ctx context.Context, authorID *uuid.UUID, req model.CreateBlogRequest) (*model.Blog, error)
	UpdateBlog(ctx context.Context, id uuid.UUID, req model.UpdateBlogRequest) (*model.Blog, error)
	DeleteBlog(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*model.BlogStats, error)
}

type blogService struct {
	repo repository.Repository
	now  func() time.Time
}

func NewBlogService(repo repository.Repository) ServiceInterface {
	return &blogService{repo: repo, now: time.Now}
}

func (s *blogService) ListBlogs(ctx context.Context, filter model.BlogFilter, canWrite bool) ([]*model.Blog, error) {
	if !canWrite {
		published := true
		filter.Published = &published
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

func (s *blogService) GetBlog(ctx context.Context, id uuid.UUID, canWrite bool) (*model.Blog, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return visible(b, canWrite)
}

func (s *blogService) GetBlogBySlug(ctx context.Context, slug string, canWrite bool) (*model.Blog, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, model.ErrBlogNotFound
	}

	b, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return visible(b, canWrite)
}

func visible(b *model.Blog, canWrite bool) (*model.Blog, error) {
	if !b.IsPublished && !canWrite {
		return nil, model.ErrBlogNotFound
	}
	return b, nil
}

func (s *blogService) CreateBlog(ctx context.Context, authorID *uuid.UUID, req model.CreateBlogRequest) (*model.Blog, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// slug gửi lên được chuẩn hóa, không có thì sinh từ title
	source := req.Title
	if req.Slug != nil {
		source = *req.Slug
	}
	slug := utils.GenerateSlug(source)
	if slug == "" {
		return nil, validation.Errors{
			"slug": validation.NewError("validation_slug_empty", "slug must contain at least one letter or digit"),
		}
	}

	blog := &model.Blog{
		Title:           req.Title,
		Slug:            slug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		CoverImage:      req.CoverImage,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		IsPublished:     req.IsPublished != nil && *req.IsPublished,
		AuthorID:        authorID,
	}
	if blog.IsPublished {
		now := s.now().UTC()
		blog.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, blog)
	if err != nil {
		return nil, err
	}

	log.Info().Str("blog_id", created.ID.String()).Str("slug", created.Slug).Msg("Blog created")
	return created, nil
}

func (s *blogService) UpdateBlog(ctx context.Context, id uuid.UUID, req model.UpdateBlogRequest) (*model.Blog, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, model.ErrNoChanges
	}

	if req.Slug != nil {
		slug := utils.GenerateSlug(*req.Slug)
		if slug == "" {
			return nil, validation.Errors{
				"slug": validation.NewError("validation_slug_empty", "slug must contain at least one letter or digit"),
			}
		}
		req.Slug = &slug
	}

	return s.repo.Update(ctx, id, req)
}

func (s *blogService) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("blog_id", id.String()).Msg("Blog deleted")
	return nil
}

func (s *blogService) Stats(ctx context.Context) (*model.BlogStats, error) {
	return s.repo.Stats(ctx)
}
