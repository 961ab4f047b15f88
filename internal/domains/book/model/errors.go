package model

import "portfolio-backend/internal/shared/errs"

var (
	ErrBookNotFound  = errs.NotFound("BOOK_NOT_FOUND", "Book not found")
	ErrInvalidBookID = errs.BadRequest("INVALID_BOOK_ID", "Invalid book ID")
	ErrNoChanges     = errs.BadRequest("NO_CHANGES", "No fields to update")
)
