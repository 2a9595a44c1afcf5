package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorResource = 3   // Indicates resource exhaustion (out of memory).
	ExitErrorConfig   = 4   // Indicates a configuration or validation error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// IndexError reports an invalid Fibonacci index. Indexes are validated at
// the application boundary (CLI, HTTP, service) before any computation
// starts; negative values are never silently clamped.
type IndexError struct {
	// N is the rejected index.
	N int64
}

// Error returns a formatted message describing the invalid index.
func (e IndexError) Error() string {
	return fmt.Sprintf("invalid index %d: must be non-negative", e.N)
}

// RangeError reports an invalid computation range. It is returned before any
// worker is dispatched, so a failed validation never wastes computation.
type RangeError struct {
	// Start is the requested lower bound (inclusive).
	Start int64
	// End is the requested upper bound (inclusive).
	End int64
	// Message explains why the range was rejected.
	Message string
}

// Error returns a formatted message describing the invalid range.
func (e RangeError) Error() string {
	return fmt.Sprintf("invalid range [%d, %d]: %s", e.Start, e.End, e.Message)
}

// NewRangeError creates a RangeError for the given bounds with a formatted
// explanation.
func NewRangeError(start, end int64, format string, a ...any) error {
	return RangeError{Start: start, End: end, Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates a calculation error while preserving the
// original cause. This allows for structured error handling and inspection
// of what went wrong during the Fibonacci calculation.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// ResourceError represents a non-recoverable resource exhaustion condition,
// typically a failed allocation while multiplying very large operands. The
// computation it belongs to is considered failed as a whole; retrying would
// fail identically since the workload is deterministic.
type ResourceError struct {
	// Operation names the step that exhausted resources.
	Operation string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a formatted message describing the resource failure.
func (e ResourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resource exhausted during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("resource exhausted during %s", e.Operation)
}

// Unwrap returns the underlying cause of the ResourceError.
func (e ResourceError) Unwrap() error { return e.Cause }

// TimeoutError represents a calculation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsValidationError reports whether the error is an input validation failure
// (invalid index, invalid range or configuration error).
func IsValidationError(err error) bool {
	var ie IndexError
	var re RangeError
	var ce ConfigError
	return errors.As(err, &ie) || errors.As(err, &re) || errors.As(err, &ce)
}

// ExitCodeForError maps an error to the application exit code.
// Validation errors map to ExitErrorConfig, context errors to
// ExitErrorCanceled/ExitErrorTimeout, resource errors to ExitErrorResource,
// and everything else to ExitErrorGeneric.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case IsValidationError(err):
		return ExitErrorConfig
	default:
		var re ResourceError
		if errors.As(err, &re) {
			return ExitErrorResource
		}
		return ExitErrorGeneric
	}
}
