package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeFileNotFound, cause, "open corpus")

	if err.Code != ErrCodeFileNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFileNotFound)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
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
			code:     ErrCodeNotFound,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "typed kind",
			err:      DuplicateTitle("A"),
			code:     ErrCodeDuplicateTitle,
			expected: true,
		},
		{
			name:     "typed kind behind fmt wrap",
			err:      fmt.Errorf("resolve: %w", UnresolvedDependency("D", "X")),
			code:     ErrCodeUnresolvedDependency,
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
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidFormat, "test"), ErrCodeInvalidFormat},
		{"duplicate title", DuplicateTitle("A"), ErrCodeDuplicateTitle},
		{"focal not found", FocalNodeNotFound("A"), ErrCodeFocalNodeNotFound},
		{"unresolved", UnresolvedDependency("D", "X"), ErrCodeUnresolvedDependency},
		{"malformed", MalformedMetadata("a.md", errors.New("bad")), ErrCodeMalformedMetadata},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "typed kind",
			err:      UnresolvedDependency("D", "X"),
			expected: `unresolved dependency: "D" depends on "X", which does not exist`,
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGraphErrors(t *testing.T) {
	t.Run("unresolved carries both titles", func(t *testing.T) {
		var ue *UnresolvedDependencyError
		if !errors.As(fmt.Errorf("wrapped: %w", UnresolvedDependency("D", "X")), &ue) {
			t.Fatal("errors.As failed")
		}
		if ue.From != "D" || ue.Dependency != "X" {
			t.Errorf("got (%q, %q), want (D, X)", ue.From, ue.Dependency)
		}
	})

	t.Run("malformed unwraps to cause", func(t *testing.T) {
		cause := errors.New("yaml: line 2: did not find expected key")
		err := MalformedMetadata("notes/a.md", cause)
		if !errors.Is(err, cause) {
			t.Error("errors.Is(err, cause) = false, want true")
		}
		want := "malformed metadata in notes/a.md: yaml: line 2: did not find expected key"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("IsGraphError", func(t *testing.T) {
		if !IsGraphError(DuplicateTitle("A")) {
			t.Error("DuplicateTitle should be a graph error")
		}
		if !IsGraphError(FocalNodeNotFound("A")) {
			t.Error("FocalNodeNotFound should be a graph error")
		}
		if IsGraphError(New(ErrCodeInvalidInput, "x")) {
			t.Error("INVALID_INPUT should not be a graph error")
		}
		if IsGraphError(nil) {
			t.Error("nil should not be a graph error")
		}
	})
}
