package model

import (
	"net/http"

	"portfolio-backend/internal/shared/errs"
)

var (
	ErrMediaNotFound   = errs.NotFound("MEDIA_NOT_FOUND", "Media not found")
	ErrInvalidMediaID  = errs.BadRequest("INVALID_MEDIA_ID", "Invalid media ID")
	ErrInvalidDataURI  = errs.BadRequest("INVALID_DATA_URI", "url must be a base64 data URI or an http(s) link")
	ErrNoFiles         = errs.BadRequest("NO_FILES", "No file parts in upload")
	ErrUnsupportedType = errs.New(http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Only images and PDF files are allowed")
	ErrFileTooLarge    = errs.New(http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the upload size limit")

	// worker only, không trả cho client
	ErrUndecodableImage = errs.New(http.StatusUnprocessableEntity, "UNDECODABLE_IMAGE", "Stored image cannot be decoded")
)
