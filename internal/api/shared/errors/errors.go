package errors

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/ecotrace/ecotrace-core/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewForbiddenError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewConflictError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeConflict,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromDomainError maps a sentinel domain error to its API representation.
// Unrecognized errors become internal errors so storage details never leak
// to clients.
func FromDomainError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		return NewForbiddenError("Permission denied", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError("Not found", err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		return NewValidationError(err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		return NewConflictError("Invalid lifecycle transition", err.Error())
	case errors.Is(err, domain.ErrInvalidToken):
		return NewNotFoundError("Invalid token", err.Error())
	case errors.Is(err, domain.ErrTokenExpired):
		return NewBadRequestError("Token expired", err.Error())
	case errors.Is(err, domain.ErrTokenAlreadyUsed):
		return NewConflictError("Token already used", err.Error())
	case errors.Is(err, domain.ErrDuplicateAward):
		return NewConflictError("Credits already awarded", err.Error())
	case errors.Is(err, domain.ErrConflict):
		return NewConflictError("Conflict", err.Error())
	default:
		return NewInternalError("Internal error")
	}
}

// HTTPStatus returns the HTTP status code for an error code
func (e *APIError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeBadRequest, ErrCodeValidationFailed:
		return 400
	case ErrCodeUnauthorized:
		return 401
	case ErrCodeForbidden:
		return 403
	case ErrCodeNotFound:
		return 404
	case ErrCodeConflict:
		return 409
	default:
		return 500
	}
}
