package carousel

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is.
var (
	ErrOutOfRange           = errors.New("carousel: slide index out of range")
	ErrInvalidConfiguration = errors.New("carousel: invalid configuration")
)

// OutOfRangeError is returned by a manual selection outside [0, Count).
type OutOfRangeError struct {
	Index int
	Count int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("carousel: slide index %d out of range [0, %d)",
		e.Index, e.Count)
}

// Is makes errors.Is(err, ErrOutOfRange) true.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// InvalidConfigurationError is returned when rotation cannot be started with
// the given parameters.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return "carousel: invalid configuration: " + e.Reason
}

// Is makes errors.Is(err, ErrInvalidConfiguration) true.
func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
