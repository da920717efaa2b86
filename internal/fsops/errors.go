package fsops

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition marks a delete attempted against a path the caller
	// asserted exists. Hitting it is a programming error in the caller,
	// not a recoverable filesystem condition.
	ErrPrecondition = errors.New("delete target does not exist")

	// ErrProcessLaunch marks a hard-link helper process that could not be
	// started at all, as opposed to one that ran and reported failure.
	ErrProcessLaunch = errors.New("failed to start link process")
)

// PreconditionError reports a DeleteConfirmed call on a missing path.
type PreconditionError struct {
	Path string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrPrecondition, e.Path)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }
