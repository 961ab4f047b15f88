package model

import (
	"net/http"

	"portfolio-backend/internal/shared/errs"
)

var (
	ErrProfileNotFound = errs.NotFound("PROFILE_NOT_FOUND", "Profile not found")
	ErrEmailTaken      = errs.Conflict("PROFILE_EMAIL_EXISTS", "Email is already linked to another identity")
	ErrInvalidID       = errs.BadRequest("INVALID_PROFILE_ID", "Invalid profile ID")
	ErrNoChanges       = errs.BadRequest("NO_CHANGES", "No fields to update")
	ErrRoleForbidden   = errs.New(http.StatusForbidden, "ROLE_CHANGE_FORBIDDEN", "Changing roles requires profiles:manage")
	ErrSelfDemotion    = errs.Conflict("SELF_DEMOTION", "Admins cannot change their own role")
	ErrInvalidRole     = errs.BadRequest("INVALID_ROLE", "Role must be one of admin, editor, member")
)
