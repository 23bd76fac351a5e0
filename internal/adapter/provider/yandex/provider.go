package yandex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/textcheck/internal/config"
	"github.com/heartmarshall/textcheck/internal/domain"
	"github.com/heartmarshall/textcheck/internal/provider"
)

// Provider checks text against the Yandex Speller JSON API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	lang       string
	options    int
	maxRetries int
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider using the base URL from cfg.
func NewProvider(cfg config.SpellerConfig, logger *slog.Logger) *Provider {
	return NewProviderWithURL(cfg.BaseURL, cfg, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, cfg config.SpellerConfig, logger *slog.Logger) *Provider {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	langs := cfg.Langs
	if len(langs) == 0 {
		langs, _ = config.ParseLangs(cfg.LangRaw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
		lang:       strings.Join(langs, ","),
		options:    optionsMask(cfg),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		log:        logger.With("adapter", "yandex"),
	}
}

// Spell submits text to checkText and returns the flagged spans.
func (p *Provider) Spell(ctx context.Context, text string) ([]provider.SpellResult, error) {
	p.log.DebugContext(ctx, "speller request", slog.Int("chars", len(text)))

	var raw []apiError
	if err := p.call(ctx, "checkText", url.Values{"text": {text}}, &raw); err != nil {
		return nil, err
	}

	results := p.mapErrors(ctx, raw)

	p.log.DebugContext(ctx, "speller response",
		slog.Int("raw", len(raw)),
		slog.Int("results", len(results)),
	)

	return results, nil
}

// SpellBatch submits several texts in one checkTexts request.
// The i-th result belongs to the i-th text.
func (p *Provider) SpellBatch(ctx context.Context, texts []string) ([][]provider.SpellResult, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	p.log.DebugContext(ctx, "speller batch request", slog.Int("texts", len(texts)))

	var raw [][]apiError
	if err := p.call(ctx, "checkTexts", url.Values{"text": texts}, &raw); err != nil {
		return nil, err
	}
	if len(raw) != len(texts) {
		return nil, fmt.Errorf("yandex: checkTexts: got %d results for %d texts: %w",
			len(raw), len(texts), domain.ErrInvalidResponse)
	}

	out := make([][]provider.SpellResult, len(raw))
	for i, errs := range raw {
		out[i] = p.mapErrors(ctx, errs)
	}
	return out, nil
}

// Ping performs a minimal check request to verify the service is reachable.
func (p *Provider) Ping(ctx context.Context) error {
	_, err := p.Spell(ctx, "ping")
	return err
}

func (p *Provider) call(ctx context.Context, method string, form url.Values, out any) error {
	form.Set("lang", p.lang)
	form.Set("options", strconv.Itoa(p.options))
	form.Set("format", "plain")

	resp, err := p.doWithRetry(ctx, method, form.Encode())
	if err != nil {
		p.log.ErrorContext(ctx, "speller request failed",
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("yandex: %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		kind := domain.ErrInvalidResponse
		if isRetryableStatus(resp.StatusCode) {
			kind = domain.ErrServiceUnavailable
		}
		return fmt.Errorf("yandex: %s: unexpected status %d: %w", method, resp.StatusCode, kind)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yandex: %s: read body: %w: %w", method, domain.ErrServiceUnavailable, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yandex: %s: decode json: %w: %w", method, domain.ErrInvalidResponse, err)
	}

	return nil
}

// doWithRetry executes the request, retrying up to maxRetries times on 5xx,
// 429 or network errors. Retries are disabled by default.
func (p *Provider) doWithRetry(ctx context.Context, method, body string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/"+method, strings.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")

		resp, err := p.httpClient.Do(req)

		shouldRetry := err != nil || isRetryableStatus(resp.StatusCode)
		if !shouldRetry || attempt >= p.maxRetries || ctx.Err() != nil {
			if err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
			}
			return resp, nil
		}

		reason := "network error"
		if err == nil {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
			resp.Body.Close()
		}
		p.log.WarnContext(ctx, "speller retry",
			slog.String("method", method),
			slog.String("reason", reason),
			slog.Int("attempt", attempt+1),
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, ctx.Err())
		case <-time.After(p.retryDelay):
		}
	}
}

// mapErrors converts API entries into provider results. Entries with codes
// other than 1..3 are dropped: code 4 means "too many errors" upstream and
// would otherwise collide with the local punctuation code.
func (p *Provider) mapErrors(ctx context.Context, errs []apiError) []provider.SpellResult {
	results := make([]provider.SpellResult, 0, len(errs))
	for _, e := range errs {
		switch e.Code {
		case apiCodeUnknownWord, apiCodeRepeatWord, apiCodeCapitalization:
		case apiCodeTooManyErrors:
			p.log.WarnContext(ctx, "speller reported too many errors", slog.Int("pos", e.Pos))
			continue
		default:
			p.log.WarnContext(ctx, "speller returned unknown code", slog.Int("code", e.Code))
			continue
		}

		suggestions := e.S
		if suggestions == nil {
			suggestions = []string{}
		}
		results = append(results, provider.SpellResult{
			Word:        e.Word,
			Pos:         e.Pos,
			Len:         e.Len,
			Row:         e.Row,
			Col:         e.Col,
			Code:        e.Code,
			Suggestions: suggestions,
		})
	}
	return results
}

func isRetryableStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

func optionsMask(cfg config.SpellerConfig) int {
	mask := 0
	if cfg.IgnoreDigits {
		mask |= optIgnoreDigits
	}
	if cfg.IgnoreURLs {
		mask |= optIgnoreURLs
	}
	if cfg.FindRepeatWords {
		mask |= optFindRepeatWords
	}
	if cfg.IgnoreCapitalization {
		mask |= optIgnoreCapitalization
	}
	return mask
}
