package provider

// SpellResult is a single flagged span returned by a spelling service.
// Pos and Len are measured in characters of the submitted text.
type SpellResult struct {
	Word        string
	Pos         int
	Len         int
	Row         int
	Col         int
	Code        int
	Suggestions []string
}
