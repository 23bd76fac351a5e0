package checker

import (
	"github.com/heartmarshall/textcheck/internal/domain"
	"github.com/heartmarshall/textcheck/internal/provider"
)

// Merge concatenates service results followed by punctuation results.
// It neither sorts nor deduplicates: a span flagged by both sources appears twice.
func Merge(service, punctuation []domain.ErrorRecord) []domain.ErrorRecord {
	merged := make([]domain.ErrorRecord, 0, len(service)+len(punctuation))
	merged = append(merged, service...)
	return append(merged, punctuation...)
}

// FromProvider converts service results into error records. Results carrying
// a code the service is not allowed to assign are dropped.
func FromProvider(results []provider.SpellResult) []domain.ErrorRecord {
	records := make([]domain.ErrorRecord, 0, len(results))
	for _, r := range results {
		code := domain.ErrorCode(r.Code)
		if !domain.IsServiceCode(code) {
			continue
		}
		suggestions := r.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		records = append(records, domain.ErrorRecord{
			Word:        r.Word,
			Pos:         r.Pos,
			Suggestions: suggestions,
			Code:        code,
		})
	}
	return records
}
