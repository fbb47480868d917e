package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that forbids the requested operation.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal is the catch-all for unexpected failures in the persistence or cache layer.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and an underlying cause alongside the message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, or the sentinel matching the error's
// code, so callers can use errors.Is against ErrNotFound/ErrValidation/ErrInternal.
func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return codeSentinel(e.Code)
}

// NewAppError wraps an underlying error with a status code and operation context.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: fmt.Errorf("%w: %w", codeSentinel(code), err)}
}

// NewNotFoundError creates a 404 AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

func codeSentinel(code int) error {
	switch code {
	case 400:
		return ErrValidation
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	default:
		return ErrInternal
	}
}
