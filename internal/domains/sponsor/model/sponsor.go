package model

import (
	"strings"
	"time"

	"portfolio-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type Sponsor struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	LogoURL      *string   `json:"logoUrl"`
	WebsiteURL   *string   `json:"websiteUrl"`
	Description  *string   `json:"description"`
	IsActive     bool      `json:"isActive"`
	DisplayOrder int       `json:"displayOrder"`
	ClickCount   int       `json:"clickCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateSponsorRequest - POST /api/sponsors, isActive mặc định true
type CreateSponsorRequest struct {
	Name         string  `json:"name"`
	LogoURL      *string `json:"logoUrl"`
	WebsiteURL   *string `json:"websiteUrl"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"isActive"`
	DisplayOrder *int    `json:"displayOrder"`
}

func (r *CreateSponsorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.LogoURL = utils.TrimPtr(r.LogoURL)
	r.WebsiteURL = utils.TrimPtr(r.WebsiteURL)
	r.Description = utils.TrimPtr(r.Description)
}

func (r CreateSponsorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.LogoURL, utils.OptionalLink(r.LogoURL)),
		validation.Field(&r.WebsiteURL, utils.OptionalLink(r.WebsiteURL)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.DisplayOrder, validation.Min(0)),
	)
}

// UpdateSponsorRequest - PATCH /api/sponsors/:id
type UpdateSponsorRequest struct {
	Name         *string `json:"name"`
	LogoURL      *string `json:"logoUrl"`
	WebsiteURL   *string `json:"websiteUrl"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"isActive"`
	DisplayOrder *int    `json:"displayOrder"`
}

func (r *UpdateSponsorRequest) Normalize() {
	r.Name = utils.TrimPtrKeep(r.Name)
	r.LogoURL = utils.TrimPtrKeep(r.LogoURL)
	r.WebsiteURL = utils.TrimPtrKeep(r.WebsiteURL)
	r.Description = utils.TrimPtrKeep(r.Description)
}

func (r UpdateSponsorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name cannot be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.LogoURL, utils.OptionalLink(r.LogoURL)),
		validation.Field(&r.WebsiteURL, utils.OptionalLink(r.WebsiteURL)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.DisplayOrder, validation.Min(0)),
	)
}

func (r UpdateSponsorRequest) IsEmpty() bool {
	return r.Name == nil && r.LogoURL == nil && r.WebsiteURL == nil &&
		r.Description == nil && r.IsActive == nil && r.DisplayOrder == nil
}

type SponsorFilter struct {
	Active *bool
}

type SponsorStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Clicks int `json:"clicks"`
}

// ClickResponse - POST /api/sponsors/:id/click
type ClickResponse struct {
	ID         uuid.UUID `json:"id"`
	ClickCount int       `json:"clickCount"`
	WebsiteURL *string   `json:"websiteUrl"`
}
