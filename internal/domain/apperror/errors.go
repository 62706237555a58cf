// Package apperror holds the error taxonomy shared by every layer.
// Infrastructure code wraps driver errors around ErrStorage; the HTTP edge
// classifies with errors.Is.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnavailable        = errors.New("feature unavailable")
	ErrStorage            = errors.New("storage error")
)

// Storage wraps a driver error so that it classifies as ErrStorage while
// keeping the original for logs.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// MissingError names the entity that could not be found. It classifies as
// ErrNotFound.
type MissingError struct {
	Entity string
}

func (e *MissingError) Error() string { return e.Entity + " not found" }
func (e *MissingError) Unwrap() error { return ErrNotFound }

func NotFound(entity string) error {
	return &MissingError{Entity: entity}
}
