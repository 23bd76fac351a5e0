package app

import (
	"log/slog"

	"github.com/heartmarshall/textcheck/internal/adapter/provider/yandex"
	"github.com/heartmarshall/textcheck/internal/config"
	"github.com/heartmarshall/textcheck/internal/service/checker"
)

// Speller bundles the Yandex client with the batching front used by checks.
type Speller struct {
	Provider *yandex.Provider
	checker.Speller
}

// NewSpeller wires the Yandex provider. With BatchSize > 1 concurrent checks
// share checkTexts requests; otherwise each check calls checkText directly.
func NewSpeller(cfg config.SpellerConfig, logger *slog.Logger) *Speller {
	p := yandex.NewProvider(cfg, logger)
	s := &Speller{Provider: p, Speller: p}
	if cfg.BatchSize > 1 {
		s.Speller = yandex.NewBatcher(p, cfg.BatchWait, cfg.BatchSize, logger)
	}
	return s
}
