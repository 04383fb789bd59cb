package errors

import "errors"

// Common error types used across the goflush library

var (
	// ErrClosed indicates that an operation was attempted on a closed writer
	ErrClosed = errors.New("writer is closed")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrSinkFailed indicates that the downstream sink reported a write failure.
	// The failure is sticky: once captured it is returned, wrapped, by every
	// subsequent Flush or Close call on the same writer.
	ErrSinkFailed = errors.New("sink write failed")
)

// IsSinkFailure returns true if the error carries a captured sink failure
func IsSinkFailure(err error) bool {
	return errors.Is(err, ErrSinkFailed)
}
