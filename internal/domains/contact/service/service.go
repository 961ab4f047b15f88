package service

import (
	"context"

	"portfolio-backend/internal/domains/contact/model"
	"portfolio-backend/internal/domains/contact/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RateKeyPrefix key trong kvstore: contact:rate:<ip>
const RateKeyPrefix = "contact:rate:"

type ServiceInterface interface {
	ListContacts(ctx context.Context, filter model.ContactFilter) ([]*model.Contact, error)
	GetContact(ctx context.Context, id uuid.UUID) (*model.Contact, error)
	// SubmitContact là form public, clientIP dùng cho rate limit
	SubmitContact(ctx context.Context, clientIP string, req model.CreateContactRequest) (*model.Contact, error)
	UpdateContact(ctx context.Context, id uuid.UUID, req model.UpdateContactRequest) (*model.Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*model.ContactStats, error)
}

type contactService struct {
	repo    repository.Repository
	limiter *RateLimiter
}

func NewContactService(repo repository.Repository, limiter *RateLimiter) ServiceInterface {
	return &contactService{repo: repo, limiter: limiter}
}

func (s *contactService) ListContacts(ctx context.Context, filter model.ContactFilter) ([]*model.Contact, error) {
	return s.repo.List(ctx, filter)
}

func (s *contactService) GetContact(ctx context.Context, id uuid.UUID) (*model.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *contactService) SubmitContact(ctx context.Context, clientIP string, req model.CreateContactRequest) (*model.Contact, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	allowed, err := s.limiter.Allow(ctx, clientIP)
	if err != nil {
		// Redis lỗi thì vẫn nhận message
		log.Warn().Err(err).Str("ip", clientIP).Msg("Contact rate limiter unavailable")
		allowed = true
	}
	if !allowed {
		log.Warn().Str("ip", clientIP).Msg("Contact rate limit exceeded")
		return nil, model.ErrTooManyMessages
	}

	c, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("contact_id", c.ID.String()).Str("ip", clientIP).Msg("Contact message received")
	return c, nil
}

func (s *contactService) UpdateContact(ctx context.Context, id uuid.UUID, req model.UpdateContactRequest) (*model.Contact, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, model.ErrNoChanges
	}

	return s.repo.Update(ctx, id, req)
}

func (s *contactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("contact_id", id.String()).Msg("Contact message deleted")
	return nil
}

func (s *contactService) Stats(ctx context.Context) (*model.ContactStats, error) {
	return s.repo.Stats(ctx)
}
