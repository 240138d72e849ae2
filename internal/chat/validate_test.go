package chat

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrEmptyMessage},
		{"whitespace only", "   ", ErrEmptyMessage},
		{"tabs and newlines", "\t\n ", ErrEmptyMessage},
		{"single char", "a", nil},
		{"normal message", "Hello, how are you?", nil},
		{"exactly at limit", strings.Repeat("a", 500), nil},
		{"one over limit", strings.Repeat("a", 501), ErrMessageTooLong},
		{"far over limit", strings.Repeat("x", 2000), ErrMessageTooLong},
		{"multibyte at limit", strings.Repeat("ü", 500), nil},
		{"multibyte over limit", strings.Repeat("ü", 501), ErrMessageTooLong},
		{"padded but valid", "  hi  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.in)
			if got != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateOrder(t *testing.T) {
	// A whitespace-only string longer than the limit is still an empty
	// message; the empty check runs first.
	in := strings.Repeat(" ", 600)
	if got := Validate(in); got != ErrEmptyMessage {
		t.Errorf("Validate(600 spaces) = %v, want ErrEmptyMessage", got)
	}
}
