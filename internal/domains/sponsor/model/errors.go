package model

import "portfolio-backend/internal/shared/errs"

var (
	ErrSponsorNotFound  = errs.NotFound("SPONSOR_NOT_FOUND", "Sponsor not found")
	ErrInvalidSponsorID = errs.BadRequest("INVALID_SPONSOR_ID", "Invalid sponsor ID")
	ErrNoChanges        = errs.BadRequest("NO_CHANGES", "No fields to update")
)
