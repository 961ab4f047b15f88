package model

import "portfolio-backend/internal/shared/errs"

var (
	ErrContactNotFound  = errs.NotFound("CONTACT_NOT_FOUND", "Contact message not found")
	ErrInvalidContactID = errs.BadRequest("INVALID_CONTACT_ID", "Invalid contact ID")
	ErrNoChanges        = errs.BadRequest("NO_CHANGES", "No fields to update")
	ErrTooManyMessages  = errs.TooManyRequests("Too many messages, please try again later")
)
