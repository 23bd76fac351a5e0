// Package report renders check results for terminals.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/heartmarshall/textcheck/internal/domain"
	"github.com/heartmarshall/textcheck/internal/service/fix"
)

// Options controls report rendering.
type Options struct {
	// Color enables ANSI colors regardless of color.NoColor.
	Color bool
	// Context prints the offending line with a caret underline under each record.
	Context bool
	// Name is printed as a header when non-empty (e.g. a file path).
	Name string
}

var (
	headerColor  = color.New(color.Bold)
	wordColor    = color.New(color.FgRed, color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
	codeColor    = color.New(color.FgYellow)
	spanColor    = color.New(color.FgRed, color.Underline)
	successColor = color.New(color.FgGreen)
)

// Write prints records found in text: either "No errors found." or a
// "Found N errors:" header followed by one block per record, in list order.
func Write(w io.Writer, text string, records []domain.ErrorRecord, opts Options) error {
	p := &printer{w: w, color: opts.Color}

	if opts.Name != "" {
		p.printf(headerColor, "%s\n", opts.Name)
	}

	if len(records) == 0 {
		p.printf(successColor, "No errors found.\n")
		return p.err
	}

	p.printf(nil, "Found %d errors:\n\n", len(records))

	var lines []line
	if opts.Context {
		lines = splitLines(text)
	}

	for _, r := range records {
		p.printf(nil, "  - Error: '")
		p.printf(wordColor, "%s", r.Word)
		p.printf(nil, "' (position: %d)\n", r.Pos)
		p.printf(nil, "    Suggestions: %s\n", strings.Join(r.Suggestions, ", "))
		p.printf(nil, "    Recommendation: ")
		p.printf(codeColor, "%d - %s", int(r.Code), domain.Describe(r.Code))
		p.printf(nil, "\n")

		if opts.Context {
			if src, marker, ok := contextFor(lines, r); ok {
				p.printf(nil, "      %s\n", src)
				p.printf(caretColor, "      %s", marker)
				p.printf(nil, "\n")
			}
		}
		p.printf(nil, "\n")
	}

	return p.err
}

// WriteFix prints the outcome of a fix-all run.
func WriteFix(w io.Writer, res fix.Result, opts Options) error {
	p := &printer{w: w, color: opts.Color}

	if len(res.Skipped) == 0 {
		p.printf(successColor, "All errors fixed (%d).\n", len(res.Applied))
		return p.err
	}

	p.printf(nil, "%s\n", res.Summary())
	for _, s := range res.Skipped {
		p.printf(nil, "  - skipped '")
		p.printf(wordColor, "%s", s.Word)
		p.printf(nil, "' (position: %d): %s\n", s.Pos, s.Reason)
	}
	return p.err
}

// Highlight returns text with every flagged span colored. Overlapping and
// duplicate spans are colored once; spans outside the text are clipped.
func Highlight(text string, records []domain.ErrorRecord, enabled bool) string {
	if !enabled || len(records) == 0 {
		return text
	}

	runes := []rune(text)
	flagged := make([]bool, len(runes))
	for _, r := range records {
		start, end := max(r.Pos, 0), min(r.End(), len(runes))
		for i := start; i < end; i++ {
			flagged[i] = true
		}
	}

	c := *spanColor
	c.EnableColor()

	var b strings.Builder
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && flagged[j] == flagged[i] {
			j++
		}
		chunk := string(runes[i:j])
		if flagged[i] {
			chunk = c.Sprint(chunk)
		}
		b.WriteString(chunk)
		i = j
	}
	return b.String()
}

type printer struct {
	w     io.Writer
	color bool
	err   error
}

func (p *printer) printf(c *color.Color, format string, args ...any) {
	if p.err != nil {
		return
	}
	s := fmt.Sprintf(format, args...)
	if c != nil && p.color {
		cc := *c
		cc.EnableColor()
		s = cc.Sprint(s)
	}
	_, p.err = io.WriteString(p.w, s)
}
