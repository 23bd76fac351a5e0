package checker

import (
	"reflect"
	"testing"

	"github.com/heartmarshall/textcheck/internal/domain"
)

func TestScanPunctuation_NoViolations(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Hello, world. How are you? Fine; thanks: really!",
		"Trailing mark at the end.",
		"Line one.\nLine two,\tTabbed",
		"Non-breaking,\u00a0space and thin,\u2009space",
		"no punctuation at all",
	}
	for _, in := range inputs {
		if got := ScanPunctuation(in); len(got) != 0 {
			t.Errorf("ScanPunctuation(%q) = %v, want empty", in, got)
		}
	}
}

func TestScanPunctuation_SingleViolation(t *testing.T) {
	t.Parallel()

	got := ScanPunctuation("Hello,world")
	want := []domain.ErrorRecord{{
		Word:        ",w",
		Pos:         5,
		Suggestions: []string{", w"},
		Code:        domain.CodePunctuation,
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ScanPunctuation() = %+v, want %+v", got, want)
	}
}

func TestScanPunctuation_TwoViolationsInOrder(t *testing.T) {
	t.Parallel()

	got := ScanPunctuation("Hi,there. Bye!Now")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Word != ",t" || got[0].Pos != 2 {
		t.Errorf("got[0] = %+v, want ,t at 2", got[0])
	}
	if got[1].Word != "!N" || got[1].Pos != 13 {
		t.Errorf("got[1] = %+v, want !N at 13", got[1])
	}
	if got[0].End() > got[1].Pos {
		t.Errorf("records overlap: %+v %+v", got[0], got[1])
	}
}

func TestScanPunctuation_EveryMark(t *testing.T) {
	t.Parallel()

	for _, mark := range []string{".", ",", "!", "?", ";", ":"} {
		got := ScanPunctuation("a" + mark + "b")
		if len(got) != 1 {
			t.Errorf("mark %q: len = %d, want 1", mark, len(got))
			continue
		}
		if got[0].Word != mark+"b" || got[0].Suggestions[0] != mark+" b" || got[0].Pos != 1 {
			t.Errorf("mark %q: got %+v", mark, got[0])
		}
	}
}

func TestScanPunctuation_OtherMarksIgnored(t *testing.T) {
	t.Parallel()

	if got := ScanPunctuation("a-b a(b) a\"b a'b"); len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

func TestScanPunctuation_PositionsAreCharacterOffsets(t *testing.T) {
	t.Parallel()

	got := ScanPunctuation("Привет,мир")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Pos != 6 {
		t.Errorf("Pos = %d, want 6 (runes, not bytes)", got[0].Pos)
	}
	if got[0].Word != ",м" || got[0].Suggestions[0] != ", м" {
		t.Errorf("got %+v", got[0])
	}
}

func TestScanPunctuation_NonOverlapping(t *testing.T) {
	t.Parallel()

	got := ScanPunctuation("Wait!!x")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1: %+v", len(got), got)
	}
	if got[0].Word != "!!" || got[0].Pos != 4 {
		t.Errorf("got %+v, want !! at 4", got[0])
	}

	got = ScanPunctuation("a,b,c")
	if len(got) != 2 || got[0].Pos != 1 || got[1].Pos != 3 {
		t.Errorf("got %+v, want records at 1 and 3", got)
	}
}

func TestScanPunctuation_Idempotent(t *testing.T) {
	t.Parallel()

	text := "One,two.Three! four;five:six"
	first := ScanPunctuation(text)
	second := ScanPunctuation(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}
	if len(first) != 4 {
		t.Errorf("len = %d, want 4", len(first))
	}
}
