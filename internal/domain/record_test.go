package domain

import "testing"

func TestDescribe_KnownCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ErrorCode
		want string
	}{
		{CodeSpelling, "spelling error"},
		{CodeRepeatedWord, "repeated word"},
		{CodeCapitalization, "incorrect capitalization"},
		{CodePunctuation, "missing space after punctuation"},
	}
	for _, tt := range tests {
		if got := Describe(tt.code); got != tt.want {
			t.Errorf("Describe(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestDescribe_UnknownCodesFallBack(t *testing.T) {
	t.Parallel()

	for _, code := range []ErrorCode{0, -1, 5, 999, 1 << 20} {
		if got := Describe(code); got != "unknown error" {
			t.Errorf("Describe(%d) = %q, want %q", code, got, "unknown error")
		}
	}
	for code := ErrorCode(-50); code <= 50; code++ {
		if code >= CodeSpelling && code <= CodePunctuation {
			continue
		}
		if got := Describe(code); got != UnknownErrorDescription {
			t.Errorf("Describe(%d) = %q, want fallback", code, got)
		}
	}
}

func TestErrorCode_String(t *testing.T) {
	t.Parallel()

	if got := CodePunctuation.String(); got != Describe(CodePunctuation) {
		t.Errorf("String() = %q, want %q", got, Describe(CodePunctuation))
	}
}

func TestIsServiceCode(t *testing.T) {
	t.Parallel()

	for _, c := range []ErrorCode{CodeSpelling, CodeRepeatedWord, CodeCapitalization} {
		if !IsServiceCode(c) {
			t.Errorf("IsServiceCode(%d) = false, want true", c)
		}
	}
	for _, c := range []ErrorCode{0, CodePunctuation, 5} {
		if IsServiceCode(c) {
			t.Errorf("IsServiceCode(%d) = true, want false", c)
		}
	}
}

func TestErrorRecord_Span(t *testing.T) {
	t.Parallel()

	r := ErrorRecord{Word: "привет", Pos: 3}
	if r.Len() != 6 {
		t.Errorf("Len() = %d, want 6", r.Len())
	}
	if r.End() != 9 {
		t.Errorf("End() = %d, want 9", r.End())
	}
	if r.Fixable() {
		t.Error("record without suggestions should not be fixable")
	}
	r.Suggestions = []string{"привет!"}
	if !r.Fixable() {
		t.Error("record with a suggestion should be fixable")
	}
}
