package services

import (
	"errors"

	"stackit/internal/repository"
)

var (
	ErrNotFound           = errors.New("Resource not found")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUnauthenticated    = errors.New("Login required")
)

// PermissionError means the caller is known but may not perform the action.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

func forbidden(msg string) error {
	return &PermissionError{Message: msg}
}

// notFound maps storage misses to the service-level ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
