package chat

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxMessageLen is the maximum accepted input length in characters.
const MaxMessageLen = 500

// Validation errors returned by Validate. These block a submission before
// any request is attempted and are surfaced inline, never in the transcript.
var (
	ErrEmptyMessage   = errors.New("Message cannot be empty")
	ErrMessageTooLong = errors.New("Message is too long (max 500 characters)")
)

// Validate checks the shape of a candidate message. It is pure and
// synchronous; rules are applied in order: empty first, then length.
// The length check runs on the raw input, not the trimmed text.
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxMessageLen {
		return ErrMessageTooLong
	}
	return nil
}
