// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--threshold"),
			expected: "invalid value 42 for flag --threshold",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestIndexError(t *testing.T) {
	t.Parallel()
	err := IndexError{N: -7}
	if got, want := err.Error(), "invalid index -7: must be non-negative"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	var ie IndexError
	if !errors.As(error(err), &ie) {
		t.Error("expected error to be IndexError type")
	}
	if ie.N != -7 {
		t.Errorf("expected N = -7, got %d", ie.N)
	}
}

func TestRangeError(t *testing.T) {
	t.Parallel()
	err := NewRangeError(15, 10, "start must not exceed end")
	if got, want := err.Error(), "invalid range [15, 10]: start must not exceed end"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	var re RangeError
	if !errors.As(err, &re) {
		t.Fatal("expected error to be RangeError type")
	}
	if re.Start != 15 || re.End != 10 {
		t.Errorf("expected bounds [15, 10], got [%d, %d]", re.Start, re.End)
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	cause := errors.New("multiplication overflow")
	err := CalculationError{Cause: cause}

	if err.Error() != cause.Error() {
		t.Errorf("expected %q, got %q", cause.Error(), err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("expected Unwrap to return the cause")
	}
}

func TestResourceError(t *testing.T) {
	t.Parallel()
	cause := errors.New("cannot allocate memory")
	withCause := ResourceError{Operation: "square F(k)", Cause: cause}
	if got, want := withCause.Error(), "resource exhausted during square F(k): cannot allocate memory"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(withCause, cause) {
		t.Error("expected errors.Is to find the cause")
	}

	withoutCause := ResourceError{Operation: "square F(k)"}
	if got, want := withoutCause.Error(), "resource exhausted during square F(k)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "range", Limit: 5 * time.Minute}
	if got, want := err.Error(), `operation "range" timed out after 5m0s`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("wrapping nil must return nil")
	}

	cause := errors.New("inner failure")
	wrapped := WrapError(cause, "range [%d, %d] failed", 10, 15)
	if got, want := wrapped.Error(), "range [10, 15] failed: inner failure"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected errors.Is to find the cause through the wrapper")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped canceled", WrapError(context.Canceled, "worker stopped"), true},
		{"generic error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("%s: IsContextError() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"index error", IndexError{N: -1}, true},
		{"range error", NewRangeError(5, 1, "start must not exceed end"), true},
		{"config error", NewConfigError("bad flag"), true},
		{"wrapped range error", WrapError(NewRangeError(5, 1, "bad"), "request rejected"), true},
		{"resource error", ResourceError{Operation: "mul"}, false},
		{"generic error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		if got := IsValidationError(tt.err); got != tt.want {
			t.Errorf("%s: IsValidationError() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"deadline exceeded", context.DeadlineExceeded, ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"wrapped canceled", WrapError(context.Canceled, "run aborted"), ExitErrorCanceled},
		{"config error", NewConfigError("bad flag"), ExitErrorConfig},
		{"index error", IndexError{N: -1}, ExitErrorConfig},
		{"range error", NewRangeError(5, 1, "bad"), ExitErrorConfig},
		{"resource error", ResourceError{Operation: "mul"}, ExitErrorResource},
		{"wrapped resource error", WrapError(ResourceError{Operation: "mul"}, "chunk failed"), ExitErrorResource},
		{"generic error", errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		if got := ExitCodeForError(tt.err); got != tt.want {
			t.Errorf("%s: ExitCodeForError() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
