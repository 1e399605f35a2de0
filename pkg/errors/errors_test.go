package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSection, "section %q: rows must be positive", "stalls")

	if err.Code != ErrCodeInvalidSection {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSection)
	}

	if err.Message != `section "stalls": rows must be positive` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `INVALID_SECTION: section "stalls": rows must be positive`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidFormat, cause, "parse venue.json")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	var list List
	list.Add(ErrCodeInvalidSection, "a")
	list.Add(ErrCodeInvalidOverride, "b")

	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidVenue, "test"),
			code:     ErrCodeInvalidVenue,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidVenue, "test"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidVenue, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "missing")),
			code:     ErrCodeFileNotFound,
			expected: true,
		},
		{
			name:     "list entry",
			err:      list,
			code:     ErrCodeInvalidOverride,
			expected: true,
		},
		{
			name:     "list without entry",
			err:      list,
			code:     ErrCodeInvalidVenue,
			expected: false,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidVenue,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidVenue,
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
		{
			name:     "Error type",
			err:      New(ErrCodeSessionNotFound, "test"),
			expected: ErrCodeSessionNotFound,
		},
		{
			name:     "list",
			err:      List{New(ErrCodeInvalidSection, "a"), New(ErrCodeInvalidVenue, "b")},
			expected: ErrCodeInvalidSection,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
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
			err:      New(ErrCodeInvalidVenue, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "list",
			err:      List{New(ErrCodeInvalidSection, "first"), New(ErrCodeInvalidSection, "second")},
			expected: "first; second",
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

func TestListErr(t *testing.T) {
	var l List
	if l.Err() != nil {
		t.Error("empty List.Err() should be nil")
	}

	l.Add(ErrCodeInvalidSection, "section %d", 1)
	l.Add(ErrCodeInvalidSection, "section %d", 2)
	err := l.Err()
	if err == nil {
		t.Fatal("List.Err() = nil, want error")
	}
	want := "INVALID_SECTION: section 1\nINVALID_SECTION: section 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidVenue,
		ErrCodeInvalidSection,
		ErrCodeInvalidOverride,
		ErrCodeInvalidFormat,
		ErrCodeInvalidConfig,
		ErrCodeFileNotFound,
		ErrCodeSectionNotFound,
		ErrCodeSessionNotFound,
		ErrCodeSessionExpired,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
