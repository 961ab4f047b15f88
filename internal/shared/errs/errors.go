package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes dùng chung cho mọi domain
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError là error có HTTP status và code ổn định cho client
type AppError struct {
	Status  int         // HTTP status code
	Code    string      // Machine-readable code (VD: "BOOK_NOT_FOUND")
	Message string      // Human-readable message
	Details interface{} // Optional field-level details
	Err     error       // Underlying error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows errors.Is / errors.As through the chain
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is so sánh theo Code, nên wrap một sentinel vẫn match được sentinel gốc
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Status == t.Status
}

// Wrap trả về bản copy của sentinel kèm underlying error
func (e *AppError) Wrap(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// WithDetails trả về bản copy của sentinel kèm details
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// ============================================
// CONSTRUCTORS
// ============================================

func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func BadRequest(code, message string) *AppError {
	return New(http.StatusBadRequest, code, message)
}

func Validation(message string, details interface{}) *AppError {
	return &AppError{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeValidation,
		Message: message,
		Details: details,
	}
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, CodeForbidden, message)
}

func NotFound(code, message string) *AppError {
	return New(http.StatusNotFound, code, message)
}

func Conflict(code, message string) *AppError {
	return New(http.StatusConflict, code, message)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, CodeRateLimited, message)
}

// Internal che cause, client chỉ nhận message generic
func Internal(err error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// As lấy AppError từ error chain, nil nếu không có
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
