package domain

import "unicode/utf8"

// ErrorCode categorizes a flagged span of text.
type ErrorCode int

const (
	CodeSpelling       ErrorCode = 1
	CodeRepeatedWord   ErrorCode = 2
	CodeCapitalization ErrorCode = 3
	// CodePunctuation is assigned only by the local punctuation scan.
	CodePunctuation ErrorCode = 4
)

// UnknownErrorDescription is returned by Describe for codes outside the known set.
const UnknownErrorDescription = "unknown error"

var descriptions = map[ErrorCode]string{
	CodeSpelling:       "spelling error",
	CodeRepeatedWord:   "repeated word",
	CodeCapitalization: "incorrect capitalization",
	CodePunctuation:    "missing space after punctuation",
}

// Describe returns a human-readable description of code.
// It never fails: unknown codes yield UnknownErrorDescription.
func Describe(code ErrorCode) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return UnknownErrorDescription
}

func (c ErrorCode) String() string { return Describe(c) }

// IsServiceCode reports whether code may be assigned by the spelling service.
func IsServiceCode(code ErrorCode) bool {
	switch code {
	case CodeSpelling, CodeRepeatedWord, CodeCapitalization:
		return true
	}
	return false
}

// ErrorRecord is a positioned, categorized flagged span of text.
//
// Pos is a zero-based character (rune) offset into the exact text that
// produced the record. It is meaningless against any other text.
type ErrorRecord struct {
	Word        string
	Pos         int
	Suggestions []string
	Code        ErrorCode
}

// Len returns the length of Word in characters.
func (r ErrorRecord) Len() int { return utf8.RuneCountInString(r.Word) }

// End returns the character offset just past Word.
func (r ErrorRecord) End() int { return r.Pos + r.Len() }

// Fixable reports whether the record carries at least one suggestion.
func (r ErrorRecord) Fixable() bool { return len(r.Suggestions) > 0 }
