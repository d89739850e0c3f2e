package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrNotFound       = errors.New("resource not found")
	ErrFileNotFound   = fmt.Errorf("%w: data file", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)
	ErrEmptySample    = errors.New("empty sample")

	// Statistics errors
	ErrDegenerateSample = errors.New("degenerate sample")

	// Output errors
	ErrOutput = errors.New("output destination not writable")
)

// NewFileNotFoundError reports a missing input file
func NewFileNotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrFileNotFound, path)
}

// NewColumnNotFoundError reports a column absent from the header row
func NewColumnNotFoundError(column, path string) error {
	return fmt.Errorf("%w: %q not present in %s", ErrColumnNotFound, column, path)
}

// NewDegenerateSampleError reports a sample the t statistic cannot be computed for
func NewDegenerateSampleError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDegenerateSample, reason)
}

// NewOutputError reports a failed write of a plot or report artifact
func NewOutputError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrOutput, path, err)
}

