package attrs

import (
	"errors"
	"fmt"
)

// Sentinel errors for package attrs.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrInvalidRoot is returned when the root is missing or not a directory.
	ErrInvalidRoot = errors.New("invalid root")
	// ErrEnumeration is returned when listing a path below the root fails.
	ErrEnumeration = errors.New("enumeration failed")
	// ErrOutputTargetExists is returned when the report destination already exists.
	ErrOutputTargetExists = errors.New("output target exists")
	// ErrCancelled is returned when the run is interrupted.
	ErrCancelled = errors.New("cancelled")
)

// AttributeComputeError reports a file whose attributes could not be computed.
type AttributeComputeError struct {
	// Path is the file path as walked.
	Path string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *AttributeComputeError) Error() string {
	return fmt.Sprintf("computing attributes of %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *AttributeComputeError) Unwrap() error {
	return e.Err
}
