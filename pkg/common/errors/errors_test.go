package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrClosed", ErrClosed, "writer is closed"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
		{"ErrSinkFailed", ErrSinkFailed, "sink write failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsSinkFailure(t *testing.T) {
	wrapped := fmt.Errorf("flush: %w: connection reset", ErrSinkFailed)
	if !IsSinkFailure(wrapped) {
		t.Error("wrapped sink failure should be recognized")
	}
	if IsSinkFailure(ErrClosed) {
		t.Error("ErrClosed should not be a sink failure")
	}
	if IsSinkFailure(nil) {
		t.Error("nil should not be a sink failure")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "bufwriter",
				Field:  "maxOutstandingBytes",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "bufwriter: invalid maxOutstandingBytes=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "pool",
				Field:  "smallSize",
				Value:  0,
				Reason: "must be positive",
				Hint:   "use a value greater than 0",
			},
			want: "pool: invalid smallSize=0 (must be positive) - use a value greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := NewValidationError("test", "field", 0, "test")

	if verr.Unwrap() != ErrInvalidConfiguration {
		t.Errorf("Unwrap() = %v, want ErrInvalidConfiguration", verr.Unwrap())
	}
	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("ValidationError should wrap ErrInvalidConfiguration")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("module", "field", 123, "test reason").WithHint("hint")

	if err.Module != "module" {
		t.Errorf("Module = %q, want %q", err.Module, "module")
	}
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Value != 123 {
		t.Errorf("Value = %v, want %v", err.Value, 123)
	}
	if err.Reason != "test reason" {
		t.Errorf("Reason = %q, want %q", err.Reason, "test reason")
	}
	if err.Hint != "hint" {
		t.Errorf("Hint = %q, want %q", err.Hint, "hint")
	}
}
