package model

import (
	"strings"
	"time"

	"portfolio-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Media là một file đã upload (ảnh, pdf) hoặc link ngoài
type Media struct {
	ID               uuid.UUID  `json:"id"`
	Filename         string     `json:"filename"`
	OriginalFilename string     `json:"originalFilename"`
	MimeType         string     `json:"mimeType"`
	Size             int64      `json:"size"`
	URL              string     `json:"url"`
	ThumbnailURL     *string    `json:"thumbnailUrl"`
	AltText          *string    `json:"altText"`
	UploadedBy       *uuid.UUID `json:"uploadedBy"`
	CreatedAt        time.Time  `json:"createdAt"`

	// StorageKey nil = link ngoài, không có object trong bucket
	StorageKey *string `json:"-"`
}

// ThumbnailMimeTypes là các định dạng worker decode được để sinh thumbnail.
// svg, webp, heic... vẫn upload được nhưng không có thumbnail.
var ThumbnailMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/bmp", "image/tiff"}

// CanThumbnail: object nằm trong bucket và thuộc định dạng decode được
func (m *Media) CanThumbnail() bool {
	if m.StorageKey == nil {
		return false
	}
	for _, t := range ThumbnailMimeTypes {
		if m.MimeType == t {
			return true
		}
	}
	return false
}

// ThumbnailKey key của thumbnail do worker sinh ra
func ThumbnailKey(storageKey string) string {
	return storageKey + "_thumb.jpg"
}

// CreateMediaRequest - POST /api/media
// URL là data: URI (base64) hoặc http(s) link
type CreateMediaRequest struct {
	OriginalFilename string  `json:"originalFilename"`
	MimeType         *string `json:"mimeType"`
	URL              string  `json:"url"`
	AltText          *string `json:"altText"`
}

func (r *CreateMediaRequest) Normalize() {
	r.OriginalFilename = strings.TrimSpace(r.OriginalFilename)
	r.MimeType = utils.TrimPtr(r.MimeType)
	r.URL = strings.TrimSpace(r.URL)
	r.AltText = utils.TrimPtr(r.AltText)
}

func (r CreateMediaRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OriginalFilename,
			validation.Required.Error("originalFilename is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.URL, validation.Required.Error("url is required")),
		validation.Field(&r.AltText, validation.Length(0, 500)),
	)
}

type MediaFilter struct {
	// Type là prefix của MIME type, VD "image" hoặc "application/pdf"
	Type string
}

type MediaStats struct {
	Total int   `json:"total"`
	Bytes int64 `json:"bytes"`
}
