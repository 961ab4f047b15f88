package model

import "portfolio-backend/internal/shared/errs"

var (
	ErrReaderRequired = errs.BadRequest("READER_REQUIRED", "Sign in or send a valid X-Reader-ID header")
	ErrInvalidBookID  = errs.BadRequest("INVALID_BOOK_ID", "Invalid book ID")
)
