package checker

import (
	"regexp"
	"unicode/utf8"

	"github.com/heartmarshall/textcheck/internal/domain"
)

// punctuationPattern matches a mark from ". , ! ? ; :" immediately followed
// by a non-whitespace character. The class mirrors Unicode whitespace, not
// only the ASCII set covered by \s.
var punctuationPattern = regexp.MustCompile(`[.,!?;:][^\s\v\p{Z}\x{1c}-\x{1f}\x{85}]`)

// ScanPunctuation returns one record per punctuation mark that is not
// followed by whitespace, left to right and non-overlapping.
// It is a pure function of text.
func ScanPunctuation(text string) []domain.ErrorRecord {
	matches := punctuationPattern.FindAllStringIndex(text, -1)
	records := make([]domain.ErrorRecord, 0, len(matches))

	runePos, bytePos := 0, 0
	for _, m := range matches {
		runePos += utf8.RuneCountInString(text[bytePos:m[0]])
		bytePos = m[0]

		word := text[m[0]:m[1]]
		mark, next := word[:1], word[1:]
		records = append(records, domain.ErrorRecord{
			Word:        word,
			Pos:         runePos,
			Suggestions: []string{mark + " " + next},
			Code:        domain.CodePunctuation,
		})
	}
	return records
}
