package model

import (
	blogmodel "portfolio-backend/internal/domains/blog/model"
	bookmodel "portfolio-backend/internal/domains/book/model"
	contactmodel "portfolio-backend/internal/domains/contact/model"
	mediamodel "portfolio-backend/internal/domains/media/model"
	sponsormodel "portfolio-backend/internal/domains/sponsor/model"
)

// Stats - GET /api/admin/stats
type Stats struct {
	Blogs    blogmodel.BlogStats       `json:"blogs"`
	Books    bookmodel.BookStats       `json:"books"`
	Media    mediamodel.MediaStats     `json:"media"`
	Sponsors sponsormodel.SponsorStats `json:"sponsors"`
	Contacts contactmodel.ContactStats `json:"contacts"`
}
