package errors

import "fmt"

// ValidationError describes an invalid configuration value with enough
// structure for callers to report which component and field were wrong.
type ValidationError struct {
	// Module is the component that rejected the value (e.g. "bufwriter").
	Module string

	// Field is the configuration field name.
	Field string

	// Value is the rejected value.
	Value interface{}

	// Reason explains why the value was rejected.
	Reason string

	// Hint optionally suggests a correction.
	Hint string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a correction hint and returns the error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap allows errors.Is checks against ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}
