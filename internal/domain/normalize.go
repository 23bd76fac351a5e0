package domain

import (
	"strings"
	"unicode/utf8"
)

// NormalizeText prepares loaded text for checking:
//   - converts CRLF and lone CR line endings to LF
//
// Everything else, including leading and trailing whitespace, is preserved
// so that positions stay valid against the text that gets saved back.
func NormalizeText(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// ValidateText rejects text that should never be submitted for checking.
// A maxLen <= 0 disables the length limit.
func ValidateText(text string, maxLen int) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidInput
	}
	if !utf8.ValidString(text) {
		return NewValidationError("text", "must be valid UTF-8")
	}
	if maxLen > 0 {
		if n := utf8.RuneCountInString(text); n > maxLen {
			return NewValidationError("text", "exceeds maximum length")
		}
	}
	return nil
}
