// Package checker combines spelling service results with a local
// punctuation scan into a single list of positioned error records.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/textcheck/internal/domain"
	"github.com/heartmarshall/textcheck/internal/provider"
	"github.com/heartmarshall/textcheck/pkg/ctxutil"
)

// Speller is the remote spelling/grammar service.
type Speller interface {
	Spell(ctx context.Context, text string) ([]provider.SpellResult, error)
}

// Outcome is delivered exactly once per Check call.
type Outcome struct {
	Errors []domain.ErrorRecord
	Err    error
}

// Checker checks one immutable text. At most one check runs at a time;
// a finished checker may be checked again.
type Checker struct {
	text    string
	speller Speller
	log     *slog.Logger

	mu      sync.Mutex
	running bool
	errors  []domain.ErrorRecord
}

// New creates a Checker for text.
func New(text string, speller Speller, log *slog.Logger) *Checker {
	return &Checker{
		text:    text,
		speller: speller,
		log:     log.With("service", "checker"),
	}
}

// Text returns the text the checker was constructed with.
func (c *Checker) Text() string { return c.text }

// Check starts a check on its own goroutine and returns a channel that
// receives a single Outcome and is then closed. It returns
// domain.ErrCheckInProgress if a previous check has not finished yet.
//
// A failed service call fails the whole check: punctuation results are not
// delivered on their own and Errors keeps the previous list.
func (c *Checker) Check(ctx context.Context) (<-chan Outcome, error) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil, domain.ErrCheckInProgress
	}
	c.running = true
	c.mu.Unlock()

	out := make(chan Outcome, 1)
	go func() {
		defer close(out)

		records, err := c.run(ctx)

		c.mu.Lock()
		if err == nil {
			c.errors = records
		}
		c.running = false
		c.mu.Unlock()

		out <- Outcome{Errors: records, Err: err}
	}()

	return out, nil
}

// Run is Check followed by waiting for its outcome.
func (c *Checker) Run(ctx context.Context) ([]domain.ErrorRecord, error) {
	ch, err := c.Check(ctx)
	if err != nil {
		return nil, err
	}
	o := <-ch
	return o.Errors, o.Err
}

// Errors returns a copy of the most recently completed error list.
// It is empty until a check succeeds.
func (c *Checker) Errors() []domain.ErrorRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.ErrorRecord, len(c.errors))
	copy(out, c.errors)
	return out
}

func (c *Checker) run(ctx context.Context) ([]domain.ErrorRecord, error) {
	checkID := uuid.New().String()
	ctx = ctxutil.WithCheckID(ctx, checkID)
	log := c.log.With(slog.String("check_id", checkID))
	if reqID := ctxutil.RequestIDFromCtx(ctx); reqID != "" {
		log = log.With(slog.String("request_id", reqID))
	}

	if strings.TrimSpace(c.text) == "" {
		log.DebugContext(ctx, "blank text, nothing to check")
		return []domain.ErrorRecord{}, nil
	}

	start := time.Now()
	log.DebugContext(ctx, "check started", slog.Int("chars", len(c.text)))

	results, err := c.speller.Spell(ctx, c.text)
	if err != nil {
		log.WarnContext(ctx, "check failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("checker: spell: %w", err)
	}

	service := FromProvider(results)
	punctuation := ScanPunctuation(c.text)
	merged := Merge(service, punctuation)

	log.InfoContext(ctx, "check completed",
		slog.Int("service", len(service)),
		slog.Int("punctuation", len(punctuation)),
		slog.Int("total", len(merged)),
		slog.Duration("duration", time.Since(start)),
	)

	return merged, nil
}
