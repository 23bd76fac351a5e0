package report

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/heartmarshall/textcheck/internal/domain"
)

// line is one line of the checked text; start is its rune offset.
type line struct {
	start int
	runes []rune
}

func splitLines(text string) []line {
	var lines []line
	offset := 0
	for _, s := range strings.Split(text, "\n") {
		r := []rune(s)
		lines = append(lines, line{start: offset, runes: r})
		offset += len(r) + 1
	}
	return lines
}

// contextFor returns the source line holding r and a caret marker under the
// record's span. Display widths come from go-runewidth so wide characters
// keep the caret aligned.
func contextFor(lines []line, r domain.ErrorRecord) (string, string, bool) {
	for _, l := range lines {
		if r.Pos < l.start || r.Pos > l.start+len(l.runes) {
			continue
		}
		col := r.Pos - l.start
		end := min(col+max(r.Len(), 1), len(l.runes))

		src := displayLine(l.runes)
		pad := runewidth.StringWidth(displayLine(l.runes[:col]))
		width := 1
		if end > col {
			width = max(runewidth.StringWidth(displayLine(l.runes[col:end])), 1)
		}

		marker := strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
		return src, marker, true
	}
	return "", "", false
}

// displayLine renders tabs as single spaces so offsets map to columns.
func displayLine(runes []rune) string {
	return strings.ReplaceAll(string(runes), "\t", " ")
}
