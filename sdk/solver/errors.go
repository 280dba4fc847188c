package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrFrozenInfoSet is returned when a frozen info set would be mutated
	// or traversed.
	ErrFrozenInfoSet = errors.New("info set is frozen")
	// ErrInsufficientTraining is returned when evaluation reaches an info
	// set that training never visited.
	ErrInsufficientTraining = errors.New("insufficient training")
	// ErrInvalidConfig is returned for inconsistent solver configuration.
	ErrInvalidConfig = errors.New("invalid solver configuration")
)

// FrozenInfoSetError identifies the frozen info set a traversal reached.
type FrozenInfoSetError struct {
	Player int
	Label  string
}

func (e *FrozenInfoSetError) Error() string {
	return fmt.Sprintf("player %d info set %q is frozen", e.Player, e.Label)
}

func (e *FrozenInfoSetError) Unwrap() error { return ErrFrozenInfoSet }

// UnreachedInfoSetError identifies an info set evaluation needed but the
// node map does not contain.
type UnreachedInfoSetError struct {
	Player int
	Label  string
}

func (e *UnreachedInfoSetError) Error() string {
	return fmt.Sprintf("%v: player %d info set %q never visited", ErrInsufficientTraining, e.Player, e.Label)
}

func (e *UnreachedInfoSetError) Unwrap() error { return ErrInsufficientTraining }
