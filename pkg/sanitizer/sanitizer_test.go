package sanitizer

import (
	"reflect"
	"testing"
)

func TestField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "Great stay", "Great stay"},
		{"embedded delimiter", "nice|view", "nice view"},
		{"newlines", "line one\nline two\r\nline three", "line one line two line three"},
		{"collapses runs", "a |\n| b", "a b"},
		{"trims", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only breakers", "|\n|", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Field(tt.input); got != tt.expected {
				t.Errorf("Field(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	if got := Email("  Dana@Example.COM "); got != "dana@example.com" {
		t.Errorf("Email() = %q, want dana@example.com", got)
	}
}

func TestCode(t *testing.T) {
	if got := Code(" welcome10 "); got != "WELCOME10" {
		t.Errorf("Code() = %q, want WELCOME10", got)
	}
}

func TestSanitizeSlice(t *testing.T) {
	got := SanitizeSlice([]string{" A@x.com", "a@X.com", "", "b@x.com"}, Email)
	want := []string{"a@x.com", "b@x.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeSlice() = %v, want %v", got, want)
	}
}
