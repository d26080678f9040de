package platform

import (
	"errors"
	"fmt"

	"github.com/ubytes/appplatform/pkg/platform/driver"
)

var (
	// ErrPreconditionViolation marks programmer errors: calling an operation in
	// a state where it is not legal.
	ErrPreconditionViolation = errors.New("platform: precondition violation")

	// ErrBackendAllocation marks failures to create a native window or web view.
	ErrBackendAllocation = errors.New("platform: backend allocation failed")

	// ErrInvalidEncoding marks malformed UTF-8, UTF-16 or JSON input.
	ErrInvalidEncoding = errors.New("platform: invalid encoding")

	// ErrUnavailable is returned when the selected backend is not available.
	ErrUnavailable = driver.ErrUnavailable
)

// PreconditionError describes an operation called in the wrong state.
type PreconditionError struct {
	Op     string
	State  string
	Reason string
}

func (e *PreconditionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("platform: %s not allowed in state %s: %s", e.Op, e.State, e.Reason)
	}
	return fmt.Sprintf("platform: %s not allowed in state %s", e.Op, e.State)
}

// Unwrap lets errors.Is match ErrPreconditionViolation.
func (e *PreconditionError) Unwrap() error {
	return ErrPreconditionViolation
}

func allocationError(what string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrBackendAllocation, what)
	}
	return fmt.Errorf("%w: %s: %w", ErrBackendAllocation, what, err)
}

func encodingError(what string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrInvalidEncoding, what)
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalidEncoding, what, err)
}
