package yandex

// apiError is a single entry of the Speller checkText response.
// checkTexts returns one []apiError per submitted text.
type apiError struct {
	Code int      `json:"code"`
	Pos  int      `json:"pos"`
	Row  int      `json:"row"`
	Col  int      `json:"col"`
	Len  int      `json:"len"`
	Word string   `json:"word"`
	S    []string `json:"s"`
}

// Speller error codes as documented by the service.
const (
	apiCodeUnknownWord    = 1
	apiCodeRepeatWord     = 2
	apiCodeCapitalization = 3
	apiCodeTooManyErrors  = 4
)

// Option bits accepted by the "options" parameter.
const (
	optIgnoreDigits         = 2
	optIgnoreURLs           = 4
	optFindRepeatWords      = 8
	optIgnoreCapitalization = 512
)
