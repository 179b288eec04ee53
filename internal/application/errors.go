package application

import (
	"errors"
	"fmt"

	"github.com/example/event-registration/internal/persistence"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidReference is returned when a registration points at an event that does not exist.
	ErrInvalidReference = errors.New("application: invalid event reference")
)

// mapRepoError translates persistence sentinels into application errors.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound), errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrConstraintViolation):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	default:
		return err
	}
}
