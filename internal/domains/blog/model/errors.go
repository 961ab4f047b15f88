package model

import "portfolio-backend/internal/shared/errs"

var (
	ErrBlogNotFound   = errs.NotFound("BLOG_NOT_FOUND", "Blog not found")
	ErrBlogSlugExists = errs.Conflict("BLOG_SLUG_EXISTS", "A blog with this slug already exists")
	ErrInvalidBlogID  = errs.BadRequest("INVALID_BLOG_ID", "Invalid blog ID")
	ErrNoChanges      = errs.BadRequest("NO_CHANGES", "No fields to update")
)
