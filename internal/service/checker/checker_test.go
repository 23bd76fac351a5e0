package checker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/textcheck/internal/domain"
	"github.com/heartmarshall/textcheck/internal/provider"
	"github.com/heartmarshall/textcheck/pkg/ctxutil"
)

type mockSpeller struct {
	spellFn func(ctx context.Context, text string) ([]provider.SpellResult, error)
	calls   atomic.Int32
}

func (m *mockSpeller) Spell(ctx context.Context, text string) ([]provider.SpellResult, error) {
	m.calls.Add(1)
	return m.spellFn(ctx, text)
}

func noErrors(context.Context, string) ([]provider.SpellResult, error) {
	return []provider.SpellResult{}, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChecker_EndToEnd_PunctuationOnly(t *testing.T) {
	t.Parallel()

	c := New("Hello,world", &mockSpeller{spellFn: noErrors}, newTestLogger())

	_, err := c.Run(context.Background())
	require.NoError(t, err)

	got := c.Errors()
	require.Len(t, got, 1)
	assert.Equal(t, domain.CodePunctuation, got[0].Code)
	assert.Equal(t, ",w", got[0].Word)
	assert.Equal(t, 5, got[0].Pos)
}

func TestChecker_ServiceResultsPrecedePunctuation(t *testing.T) {
	t.Parallel()

	sp := &mockSpeller{spellFn: func(_ context.Context, text string) ([]provider.SpellResult, error) {
		assert.Equal(t, "Helo,world wrld", text)
		return []provider.SpellResult{
			{Word: "wrld", Pos: 11, Len: 4, Code: 1, Suggestions: []string{"world"}},
			{Word: "Helo", Pos: 0, Len: 4, Code: 1, Suggestions: []string{"Hello"}},
		}, nil
	}}
	c := New("Helo,world wrld", sp, newTestLogger())

	got, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "wrld", got[0].Word)
	assert.Equal(t, "Helo", got[1].Word)
	assert.Equal(t, ",w", got[2].Word)
	assert.Equal(t, domain.CodePunctuation, got[2].Code)
	assert.Equal(t, got, c.Errors())
}

func TestChecker_ErrorsEmptyBeforeCheck(t *testing.T) {
	t.Parallel()

	c := New("Hello,world", &mockSpeller{spellFn: noErrors}, newTestLogger())
	got := c.Errors()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestChecker_CheckIsAsynchronous(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	sp := &mockSpeller{spellFn: func(context.Context, string) ([]provider.SpellResult, error) {
		<-release
		return nil, nil
	}}
	c := New("a,b", sp, newTestLogger())

	ch, err := c.Check(context.Background())
	require.NoError(t, err)

	select {
	case <-ch:
		t.Fatal("outcome delivered before the service responded")
	default:
	}
	assert.Empty(t, c.Errors(), "errors must not be visible while in flight")

	close(release)

	select {
	case o, ok := <-ch:
		require.True(t, ok)
		require.NoError(t, o.Err)
		assert.Len(t, o.Errors, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("outcome not delivered")
	}

	_, ok := <-ch
	assert.False(t, ok, "channel must be closed after the single outcome")
	assert.Len(t, c.Errors(), 1)
}

func TestChecker_OverlappingCheckRejected(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	sp := &mockSpeller{spellFn: func(context.Context, string) ([]provider.SpellResult, error) {
		<-release
		return nil, nil
	}}
	c := New("text", sp, newTestLogger())

	first, err := c.Check(context.Background())
	require.NoError(t, err)

	_, err = c.Check(context.Background())
	assert.ErrorIs(t, err, domain.ErrCheckInProgress)

	close(release)
	o := <-first
	require.NoError(t, o.Err)

	// A finished checker can be checked again.
	_, err = c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), sp.calls.Load())
}

func TestChecker_ServiceFailureIsAtomic(t *testing.T) {
	t.Parallel()

	fail := false
	sp := &mockSpeller{spellFn: func(context.Context, string) ([]provider.SpellResult, error) {
		if fail {
			return nil, fmt.Errorf("yandex: checkText: unexpected status 503: %w", domain.ErrServiceUnavailable)
		}
		return nil, nil
	}}
	c := New("Hello,world", sp, newTestLogger())

	_, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Errors(), 1)

	fail = true
	got, err := c.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.Nil(t, got, "no partial results on failure")
	assert.Len(t, c.Errors(), 1, "previous list survives a failed check")
}

func TestChecker_ServiceErrorKindPropagates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "unavailable", err: domain.ErrServiceUnavailable},
		{name: "invalid response", err: domain.ErrInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sp := &mockSpeller{spellFn: func(context.Context, string) ([]provider.SpellResult, error) {
				return nil, tt.err
			}}
			c := New("Hello,world", sp, newTestLogger())

			ch, err := c.Check(context.Background())
			require.NoError(t, err)
			o := <-ch
			assert.ErrorIs(t, o.Err, tt.err)
			assert.Empty(t, c.Errors())
		})
	}
}

func TestChecker_BlankTextSkipsService(t *testing.T) {
	t.Parallel()

	sp := &mockSpeller{spellFn: noErrors}
	for _, text := range []string{"", "   ", "\n\t"} {
		c := New(text, sp, newTestLogger())
		got, err := c.Run(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.Equal(t, int32(0), sp.calls.Load())
}

func TestChecker_ErrorsReturnsCopy(t *testing.T) {
	t.Parallel()

	c := New("a,b", &mockSpeller{spellFn: noErrors}, newTestLogger())
	_, err := c.Run(context.Background())
	require.NoError(t, err)

	got := c.Errors()
	got[0].Word = "mutated"
	assert.Equal(t, ",b", c.Errors()[0].Word)
}

func TestChecker_FreshRecordsPerCheck(t *testing.T) {
	t.Parallel()

	c := New("a,b", &mockSpeller{spellFn: noErrors}, newTestLogger())
	first, err := c.Run(context.Background())
	require.NoError(t, err)
	second, err := c.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
	first[0].Suggestions[0] = "mutated"
	assert.Equal(t, ", b", second[0].Suggestions[0])
}

func TestChecker_SpellerSeesCheckID(t *testing.T) {
	t.Parallel()

	var seen []string
	sp := &mockSpeller{spellFn: func(ctx context.Context, _ string) ([]provider.SpellResult, error) {
		seen = append(seen, ctxutil.CheckIDFromCtx(ctx))
		return nil, nil
	}}
	c := New("text", sp, newTestLogger())

	for range 2 {
		_, err := c.Run(ctxutil.WithRequestID(context.Background(), "req-1"))
		require.NoError(t, err)
	}

	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.NotEqual(t, seen[0], seen[1], "every check gets its own id")
}
