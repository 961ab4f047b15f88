package service

import (
	"context"

	"portfolio-backend/internal/domains/sponsor/model"
	"portfolio-backend/internal/domains/sponsor/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ServiceInterface interface {
	// canWrite = false thì chỉ thấy sponsor đang active
	ListSponsors(ctx context.Context, filter model.SponsorFilter, canWrite bool) ([]*model.Sponsor, error)
	GetSponsor(ctx context.Context, id uuid.UUID, canWrite bool) (*model.Sponsor, error)
	CreateSponsor(ctx context.Context, req model.CreateSponsorRequest) (*model.Sponsor, error)
	UpdateSponsor(ctx context.Context, id uuid.UUID, req model.UpdateSponsorRequest) (*model.Sponsor, error)
	DeleteSponsor(ctx context.Context, id uuid.UUID) error
	RecordClick(ctx context.Context, id uuid.UUID) (*model.ClickResponse, error)
	Stats(ctx context.Context) (*model.SponsorStats, error)
}

type sponsorService struct {
	repo repository.Repository
}

func NewSponsorService(repo repository.Repository) ServiceInterface {
	return &sponsorService{repo: repo}
}

func (s *sponsorService) ListSponsors(ctx context.Context, filter model.SponsorFilter, canWrite bool) ([]*model.Sponsor, error) {
	if !canWrite {
		active := true
		filter.Active = &active
	}
	return s.repo.List(ctx, filter)
}

func (s *sponsorService) GetSponsor(ctx context.Context, id uuid.UUID, canWrite bool) (*model.Sponsor, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sp.IsActive && !canWrite {
		return nil, model.ErrSponsorNotFound
	}
	return sp, nil
}

func (s *sponsorService) CreateSponsor(ctx context.Context, req model.CreateSponsorRequest) (*model.Sponsor, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sp, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("sponsor_id", sp.ID.String()).Str("name", sp.Name).Msg("Sponsor created")
	return sp, nil
}

func (s *sponsorService) UpdateSponsor(ctx context.Context, id uuid.UUID, req model.UpdateSponsorRequest) (*model.Sponsor, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, model.ErrNoChanges
	}

	return s.repo.Update(ctx, id, req)
}

func (s *sponsorService) DeleteSponsor(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("sponsor_id", id.String()).Msg("Sponsor deleted")
	return nil
}

func (s *sponsorService) RecordClick(ctx context.Context, id uuid.UUID) (*model.ClickResponse, error) {
	sp, err := s.repo.IncrementClick(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.ClickResponse{ID: sp.ID, ClickCount: sp.ClickCount, WebsiteURL: sp.WebsiteURL}, nil
}

func (s *sponsorService) Stats(ctx context.Context) (*model.SponsorStats, error) {
	return s.repo.Stats(ctx)
}
