package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")

	// ErrRelationMissing marks a gateway failure caused by the backing
	// table or bucket not existing yet. Callers fall back to local data
	// without alarming the user.
	ErrRelationMissing = errors.New("relation missing")

	// ErrPermissionDenied marks a gateway row-level-security or storage
	// policy denial. Callers surface remediation guidance for it.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotPurchased marks a review submission for a product the session
	// has not checked out.
	ErrNotPurchased = errors.New("product not purchased")
)

// AppError is a structured application error with an HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// RelationMissing creates an error for a missing remote table or bucket.
func RelationMissing(relation string) *AppError {
	return &AppError{
		Code:    "RELATION_MISSING",
		Message: fmt.Sprintf("remote relation %q does not exist; run the setup script against the hosted database", relation),
		Status:  http.StatusServiceUnavailable,
		Err:     ErrRelationMissing,
	}
}

// PermissionDenied creates an error for a remote policy denial.
func PermissionDenied(resource string) *AppError {
	return &AppError{
		Code:    "PERMISSION_DENIED",
		Message: fmt.Sprintf("remote policy denied access to %s; check row-level-security and storage policies", resource),
		Status:  http.StatusForbidden,
		Err:     ErrPermissionDenied,
	}
}

// NotPurchased creates a 403 error for review submissions without a
// matching checkout.
func NotPurchased(productID string) *AppError {
	return &AppError{
		Code:    "NOT_PURCHASED",
		Message: fmt.Sprintf("only verified purchasers can review product %s", productID),
		Status:  http.StatusForbidden,
		Err:     ErrNotPurchased,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotPurchased), errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrRelationMissing):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
