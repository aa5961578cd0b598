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

// ErrForbidden indicates the operation is not permitted on the resource in its current state.
var ErrForbidden = errors.New("operation forbidden")

// ErrConflict indicates the resource is already in the requested state.
var ErrConflict = errors.New("resource state conflict")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// ErrConfiguration indicates missing or inconsistent accounting setup, such as an
// unseeded chart-of-accounts code or an unmapped cash account type.
var ErrConfiguration = errors.New("accounting configuration error")

// ErrUnbalanced is returned when total debit differs from total credit.
var ErrUnbalanced = errors.New("unbalanced journal attempted")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
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

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: 404, Message: resource + " not found", Err: ErrNotFound}
}

// NewConfigurationError returns an error matching ErrConfiguration. When cause is
// non-nil it is matched as well, e.g. ErrNotFound for a missing account code.
func NewConfigurationError(message string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrConfiguration, message)
	}
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, message, cause)
}
