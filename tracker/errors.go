package tracker

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyProject rejects switching to a blank project name.
	ErrEmptyProject = errors.New("project name must not be empty")

	// ErrInvalidHours rejects adjustments whose hours value is not a
	// positive number.
	ErrInvalidHours = errors.New(
		"hours to move must be a number greater than zero",
	)

	// ErrSameProject rejects adjustments between identical projects.
	ErrSameProject = errors.New(
		"source and destination projects must be different",
	)
)

// InsufficientTimeError rejects adjustments that request more hours than the
// source project has logged today.
type InsufficientTimeError struct {
	Project   string
	Available time.Duration
}

func (e *InsufficientTimeError) Error() string {
	return fmt.Sprintf(
		"only %.2f hrs logged for %q today",
		e.Available.Hours(),
		e.Project,
	)
}
