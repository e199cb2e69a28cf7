package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrBookingNotFound is returned when a referenced booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCustomerNotFound is returned when the booking's customer is unknown.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrRoomUnavailable is returned when a requested room is not available
	// in the room service's current snapshot.
	ErrRoomUnavailable = errors.New("room not available")

	// ErrNoRooms is returned when a booking without rooms tries to leave
	// PENDING.
	ErrNoRooms = errors.New("booking has no rooms")

	// ErrInvalidStateTransition is the sentinel all transition violations
	// wrap; match with errors.Is.
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

// InvalidTransitionError reports a step applied to a booking whose current
// status does not permit it.
type InvalidTransitionError struct {
	From Status
	Step Step
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: step %s not allowed from status %s", e.Step, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}
