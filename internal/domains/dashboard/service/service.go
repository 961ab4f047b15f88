package service

import (
	"context"
	"fmt"

	blogmodel "portfolio-backend/internal/domains/blog/model"
	bookmodel "portfolio-backend/internal/domains/book/model"
	contactmodel "portfolio-backend/internal/domains/contact/model"
	"portfolio-backend/internal/domains/dashboard/model"
	mediamodel "portfolio-backend/internal/domains/media/model"
	sponsormodel "portfolio-backend/internal/domains/sponsor/model"

	"golang.org/x/sync/errgroup"
)

type BlogStatter interface {
	Stats(ctx context.Context) (*blogmodel.BlogStats, error)
}

type BookStatter interface {
	Stats(ctx context.Context) (*bookmodel.BookStats, error)
}

type MediaStatter interface {
	Stats(ctx context.Context) (*mediamodel.MediaStats, error)
}

type SponsorStatter interface {
	Stats(ctx context.Context) (*sponsormodel.SponsorStats, error)
}

type ContactStatter interface {
	Stats(ctx context.Context) (*contactmodel.ContactStats, error)
}

// Sources gom các service có Stats
type Sources struct {
	Blogs    BlogStatter
	Books    BookStatter
	Media    MediaStatter
	Sponsors SponsorStatter
	Contacts ContactStatter
}

type ServiceInterface interface {
	Stats(ctx context.Context) (*model.Stats, error)
}

type dashboardService struct {
	src Sources
}

func NewDashboardService(src Sources) ServiceInterface {
	return &dashboardService{src: src}
}

// Stats chạy 5 query song song, một query lỗi thì cả request lỗi
func (s *dashboardService) Stats(ctx context.Context) (*model.Stats, error) {
	var out model.Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := s.src.Blogs.Stats(ctx)
		if err != nil {
			return fmt.Errorf("blog stats: %w", err)
		}
		out.Blogs = *v
		return nil
	})
	g.Go(func() error {
		v, err := s.src.Books.Stats(ctx)
		if err != nil {
			return fmt.Errorf("book stats: %w", err)
		}
		out.Books = *v
		return nil
	})
	g.Go(func() error {
		v, err := s.src.Media.Stats(ctx)
		if err != nil {
			return fmt.Errorf("media stats: %w", err)
		}
		out.Media = *v
		return nil
	})
	g.Go(func() error {
		v, err := s.src.Sponsors.Stats(ctx)
		if err != nil {
			return fmt.Errorf("sponsor stats: %w", err)
		}
		out.Sponsors = *v
		return nil
	})
	g.Go(func() error {
		v, err := s.src.Contacts.Stats(ctx)
		if err != nil {
			return fmt.Errorf("contact stats: %w", err)
		}
		out.Contacts = *v
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
