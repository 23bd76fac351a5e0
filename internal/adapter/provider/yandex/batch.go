package yandex

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/textcheck/internal/domain"
	"github.com/heartmarshall/textcheck/internal/provider"
)

type batchSpeller interface {
	SpellBatch(ctx context.Context, texts []string) ([][]provider.SpellResult, error)
}

// Batcher coalesces concurrent Spell calls into a single checkTexts request.
// Results are never cached: every call yields fresh records.
type Batcher struct {
	loader  *dataloader.Loader[string, []provider.SpellResult]
	speller batchSpeller
	log     *slog.Logger
}

// NewBatcher creates a Batcher that waits up to wait for more texts and sends
// at most size texts per request.
func NewBatcher(speller batchSpeller, wait time.Duration, size int, logger *slog.Logger) *Batcher {
	b := &Batcher{
		speller: speller,
		log:     logger.With("adapter", "yandex_batch"),
	}
	b.loader = dataloader.NewBatchedLoader(b.batch,
		dataloader.WithWait[string, []provider.SpellResult](wait),
		dataloader.WithBatchCapacity[string, []provider.SpellResult](size),
		dataloader.WithCache[string, []provider.SpellResult](&dataloader.NoCache[string, []provider.SpellResult]{}),
	)
	return b
}

// Spell enqueues text into the current batch and waits for its result.
func (b *Batcher) Spell(ctx context.Context, text string) ([]provider.SpellResult, error) {
	thunk := b.loader.Load(ctx, text)

	type result struct {
		data []provider.SpellResult
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := thunk()
		ch <- result{data: data, err: err}
	}()

	select {
	case r := <-ch:
		return r.data, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("yandex: batch: %w: %w", domain.ErrServiceUnavailable, ctx.Err())
	}
}

// batch runs detached from the context of whichever caller opened the batch,
// so one cancelled caller does not fail the others.
func (b *Batcher) batch(ctx context.Context, texts []string) []*dataloader.Result[[]provider.SpellResult] {
	b.log.DebugContext(ctx, "flush batch", slog.Int("texts", len(texts)))

	out := make([]*dataloader.Result[[]provider.SpellResult], len(texts))
	results, err := b.speller.SpellBatch(context.WithoutCancel(ctx), texts)
	for i := range texts {
		if err != nil {
			out[i] = &dataloader.Result[[]provider.SpellResult]{Error: err}
			continue
		}
		out[i] = &dataloader.Result[[]provider.SpellResult]{Data: results[i]}
	}
	return out
}
