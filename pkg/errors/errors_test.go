package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "missing column: %s", "from_id")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != "missing column: from_id" {
		t.Errorf("Message = %v, want %v", err.Message, "missing column: from_id")
	}

	expected := "INVALID_INPUT: missing column: from_id"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeResourceUnavailable, cause, "fetch dataset")

	if err.Code != ErrCodeResourceUnavailable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeResourceUnavailable)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "RESOURCE_UNAVAILABLE: fetch dataset: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "outermost code wins",
			err:      Wrap(ErrCodeResourceUnavailable, New(ErrCodeNetwork, "inner"), "outer"),
			code:     ErrCodeResourceUnavailable,
			expected: true,
		},
		{
			name:     "inner code matches",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeNetwork, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("load: %w", New(ErrCodeMalformedRow, "row 3")),
			code:     ErrCodeMalformedRow,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "slow")); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeTimeout)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidSource, "source cannot be empty")); got != "source cannot be empty" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidInput, "bad"), http.StatusBadRequest},
		{New(ErrCodeInvalidFormat, "bad"), http.StatusBadRequest},
		{New(ErrCodeNotFound, "gone"), http.StatusNotFound},
		{Wrap(ErrCodeResourceUnavailable, errors.New("refused"), "fetch"), http.StatusBadGateway},
		{New(ErrCodeTimeout, "slow"), http.StatusGatewayTimeout},
		{New(ErrCodeInvalidConfig, "cache"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"invalid config", New(ErrCodeInvalidConfig, "unknown key"), ExitUsage},
		{"missing source", fmt.Errorf("build: %w", New(ErrCodeResourceUnavailable, "read")), ExitUnavailable},
		{"internal", New(ErrCodeInternal, "boom"), ExitFailure},
		{"plain", errors.New("plain"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
