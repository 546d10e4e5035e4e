package exchange

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a pattern, request, session, or embedded
// record cannot be located.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidArgumentError is returned for malformed enum values, out-of-range
// ratings, and other contract violations by the caller.
type InvalidArgumentError struct {
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// CorruptStateError is returned when a persisted snapshot cannot be decoded.
// The caller's policy is to log it and start from empty state.
type CorruptStateError struct {
	Cause error
}

func (e CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt snapshot state: %v", e.Cause)
}

func (e CorruptStateError) Unwrap() error { return e.Cause }

func invalidArgumentf(format string, args ...interface{}) error {
	return InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsInvalidArgument reports whether err is an InvalidArgumentError
func IsInvalidArgument(err error) bool {
	var ia InvalidArgumentError
	return errors.As(err, &ia)
}

// IsCorruptState reports whether err is a CorruptStateError
func IsCorruptState(err error) bool {
	var cs CorruptStateError
	return errors.As(err, &cs)
}
