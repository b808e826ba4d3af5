package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrBadRequest indicates input of valid shape that violates a business rule
// (period closed, entry already posted, account has children, ...).
var ErrBadRequest = errors.New("business rule violation")

// ErrConflict indicates an attempt to create a resource that already exists
// or to apply a state transition that is no longer valid.
var ErrConflict = errors.New("resource conflict")

// ErrForbidden indicates the caller lacks the capability for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected failure inside the application.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level failure with a status code and message.
// Repositories use it for infrastructure errors; business failures use the
// sentinel errors above.
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

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an error that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) error {
	return fmt.Errorf("%s: %w", message, ErrNotFound)
}
