package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/textcheck/internal/domain"
	"github.com/heartmarshall/textcheck/internal/service/fix"
)

func TestWrite_NoErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "Fine text.", nil, Options{}))
	assert.Equal(t, "No errors found.\n", buf.String())
}

func TestWrite_Records(t *testing.T) {
	t.Parallel()

	records := []domain.ErrorRecord{
		{Word: "Helo", Pos: 0, Suggestions: []string{"Hello", "Halo"}, Code: domain.CodeSpelling},
		{Word: ",w", Pos: 4, Suggestions: []string{", w"}, Code: domain.CodePunctuation},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "Helo,world", records, Options{}))

	want := "Found 2 errors:\n\n" +
		"  - Error: 'Helo' (position: 0)\n" +
		"    Suggestions: Hello, Halo\n" +
		"    Recommendation: 1 - spelling error\n\n" +
		"  - Error: ',w' (position: 4)\n" +
		"    Suggestions: , w\n" +
		"    Recommendation: 4 - missing space after punctuation\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_UnknownCodeUsesFallback(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	records := []domain.ErrorRecord{{Word: "x", Pos: 0, Suggestions: []string{}, Code: 99}}
	require.NoError(t, Write(&buf, "x", records, Options{}))
	assert.Contains(t, buf.String(), "99 - unknown error")
}

func TestWrite_Context(t *testing.T) {
	t.Parallel()

	text := "first line\nsecnd line"
	records := []domain.ErrorRecord{
		{Word: "secnd", Pos: 11, Suggestions: []string{"second"}, Code: domain.CodeSpelling},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, text, records, Options{Context: true, Name: "notes.txt"}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "notes.txt\n"))
	assert.Contains(t, out, "      secnd line\n      ^~~~~\n")
}

func TestContextFor_WideRunes(t *testing.T) {
	t.Parallel()

	lines := splitLines("日本語,x")
	src, marker, ok := contextFor(lines, domain.ErrorRecord{Word: ",x", Pos: 3})
	require.True(t, ok)
	assert.Equal(t, "日本語,x", src)
	// Each CJK rune is two columns wide.
	assert.Equal(t, "      ^~", marker)
}

func TestContextFor_Tabs(t *testing.T) {
	t.Parallel()

	lines := splitLines("\tfoo bar")
	src, marker, ok := contextFor(lines, domain.ErrorRecord{Word: "bar", Pos: 5})
	require.True(t, ok)
	assert.Equal(t, " foo bar", src)
	assert.Equal(t, "     ^~~", marker)
}

func TestContextFor_OutOfRange(t *testing.T) {
	t.Parallel()

	_, _, ok := contextFor(splitLines("abc"), domain.ErrorRecord{Word: "x", Pos: 10})
	assert.False(t, ok)
}

func TestWriteFix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteFix(&buf, fix.Result{Applied: make([]fix.AppliedFix, 2)}, Options{}))
	assert.Equal(t, "All errors fixed (2).\n", buf.String())

	buf.Reset()
	res := fix.Result{
		Applied: make([]fix.AppliedFix, 1),
		Skipped: []fix.SkippedFix{{Word: "wrd", Pos: 3, Reason: "no suggestions"}},
	}
	require.NoError(t, WriteFix(&buf, res, Options{}))
	assert.Equal(t, "applied 1, skipped 1\n  - skipped 'wrd' (position: 3): no suggestions\n", buf.String())
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	records := []domain.ErrorRecord{
		{Word: "Helo", Pos: 0},
		{Word: "Helo", Pos: 0},
		{Word: "wrld", Pos: 11},
	}

	assert.Equal(t, "Helo,world wrld", Highlight("Helo,world wrld", records, false))

	got := Highlight("Helo,world wrld", records, true)
	assert.Equal(t, "\x1b[31;4mHelo\x1b[0;24m,world \x1b[31;4mwrld\x1b[0;24m", got)
	assert.Equal(t, 2, strings.Count(got, "\x1b[31;4m"), "duplicate spans are colored once")
	assert.Contains(t, got, "Helo")
	assert.Contains(t, got, ",world ")

	clipped := Highlight("ab", []domain.ErrorRecord{{Word: "abcdef", Pos: 1}}, true)
	assert.Contains(t, clipped, "b")
	assert.True(t, strings.HasPrefix(clipped, "a"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesWriterError(t *testing.T) {
	t.Parallel()

	err := Write(failingWriter{}, "x", nil, Options{})
	assert.EqualError(t, err, "disk full")
}
