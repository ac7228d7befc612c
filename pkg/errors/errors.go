package errors

import (
	"errors"
	"fmt"
)

// Common client errors with proper types for error handling

var (
	// ErrNotFound indicates the requested profile or user was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrBusy indicates an exclusive operation is already in flight
	ErrBusy = errors.New("operation in flight")

	// ErrNotReady indicates the edit session has not finished loading
	ErrNotReady = errors.New("session not ready")

	// ErrConflict indicates a conflict with existing data
	ErrConflict = errors.New("conflict")

	// ErrRemote indicates the profile service rejected or failed the request
	ErrRemote = errors.New("remote service error")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// RemoteError creates a remote service error with status context
func RemoteError(operation string, status int) error {
	return fmt.Errorf("%s: status %d: %w", operation, status, ErrRemote)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
