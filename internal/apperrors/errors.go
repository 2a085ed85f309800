package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrMalformedCommand indicates a chat command with a bad argument count or type.
// It is user-correctable and answered with a usage hint.
var ErrMalformedCommand = errors.New("malformed command")

// ErrEmptyResult indicates that a query or balance computation found nothing.
// It is reported as an informational message, not as a failure.
var ErrEmptyResult = errors.New("empty result")

// ErrStoreUnavailable indicates that the record store could not be reached or written.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrInvalidPayload indicates a button payload that could not be decoded
// (corrupted, truncated or replayed from an older format).
var ErrInvalidPayload = errors.New("invalid button payload")

// MalformedCommandError names the argument that made a command unusable.
type MalformedCommandError struct {
	Field  string
	Reason string
}

// NewMalformedCommand creates a MalformedCommandError for the given argument.
func NewMalformedCommand(field, reason string) *MalformedCommandError {
	return &MalformedCommandError{Field: field, Reason: reason}
}

func (e *MalformedCommandError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedCommand, e.Field)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedCommand, e.Field, e.Reason)
}

// Is lets errors.Is match the ErrMalformedCommand sentinel.
func (e *MalformedCommandError) Is(target error) bool {
	return target == ErrMalformedCommand
}

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StoreError wraps a persistence failure so callers can match ErrStoreUnavailable
// while keeping the driver error in the chain.
func StoreError(message string, err error) error {
	return NewAppError(500, message, errors.Join(ErrStoreUnavailable, err))
}
