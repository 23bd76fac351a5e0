// Package fix applies the first suggestion of every fixable error record to
// the text that produced them.
package fix

import (
	"fmt"
	"sort"
	"strings"

	"github.com/heartmarshall/textcheck/internal/domain"
)

// AppliedFix records a replacement that made it into the result text.
type AppliedFix struct {
	Word        string           `json:"word"`
	Pos         int              `json:"pos"`
	Replacement string           `json:"replacement"`
	Code        domain.ErrorCode `json:"code"`
}

// SkippedFix captures a record that was not applied, with a reason.
type SkippedFix struct {
	Word   string `json:"word"`
	Pos    int    `json:"pos"`
	Reason string `json:"reason"`
}

// Result aggregates the fixed text with applied and skipped records.
// Applied is in application order, i.e. descending Pos.
type Result struct {
	Text    string
	Applied []AppliedFix
	Skipped []SkippedFix
}

const (
	reasonNoSuggestions = "no suggestions"
	reasonOutOfRange    = "position out of range"
	reasonMismatch      = "text at position does not match word"
)

// ApplyAll replaces each record's word with its first suggestion. Positions
// are rune offsets into text. Records are applied from the end of the text
// towards the start so that earlier offsets stay valid as lengths change.
// A record is applied only if its word still matches the partially fixed
// text at its position, so a span already rewritten by a later record is
// skipped unless the rewrite left its characters intact.
func ApplyAll(text string, records []domain.ErrorRecord) Result {
	result := Result{
		Text:    text,
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}
	if len(records) == 0 {
		return result
	}

	ordered := make([]domain.ErrorRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Pos > ordered[j].Pos
	})

	runes := []rune(text)
	original := len(runes)

	for _, r := range ordered {
		if !r.Fixable() {
			result.Skipped = append(result.Skipped, skip(r, reasonNoSuggestions))
			continue
		}
		if r.Pos < 0 || r.End() > original || r.Len() == 0 {
			result.Skipped = append(result.Skipped, skip(r, reasonOutOfRange))
			continue
		}
		// Everything before r.Pos is untouched; the tail may have shrunk.
		if string(runes[r.Pos:min(r.End(), len(runes))]) != r.Word {
			result.Skipped = append(result.Skipped, skip(r, reasonMismatch))
			continue
		}

		replacement := r.Suggestions[0]
		runes = splice(runes, r.Pos, r.End(), []rune(replacement))

		result.Applied = append(result.Applied, AppliedFix{
			Word:        r.Word,
			Pos:         r.Pos,
			Replacement: replacement,
			Code:        r.Code,
		})
	}

	result.Text = string(runes)
	return result
}

// Summary is a one-line description of the result, e.g. "applied 3, skipped 1".
func (r Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "applied %d", len(r.Applied))
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, ", skipped %d", len(r.Skipped))
	}
	return b.String()
}

func splice(runes []rune, start, end int, with []rune) []rune {
	out := make([]rune, 0, len(runes)-(end-start)+len(with))
	out = append(out, runes[:start]...)
	out = append(out, with...)
	return append(out, runes[end:]...)
}

func skip(r domain.ErrorRecord, reason string) SkippedFix {
	return SkippedFix{Word: r.Word, Pos: r.Pos, Reason: reason}
}
