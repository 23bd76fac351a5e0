package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// supportedLangs are the languages accepted by the spelling service.
var supportedLangs = []string{"ru", "uk", "en"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	if err := c.Speller.validate(); err != nil {
		return fmt.Errorf("speller: %w", err)
	}

	if c.Checker.MaxTextLength <= 0 {
		return fmt.Errorf("checker.max_text_length must be > 0 (got %d)", c.Checker.MaxTextLength)
	}
	if c.Checker.CheckTimeout <= 0 {
		return fmt.Errorf("checker.check_timeout must be > 0 (got %v)", c.Checker.CheckTimeout)
	}
	if c.Checker.Concurrency <= 0 {
		return fmt.Errorf("checker.concurrency must be > 0 (got %d)", c.Checker.Concurrency)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.RateLimit.Enabled && c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be > 0 when enabled (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}

func (s *SpellerConfig) validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", s.BaseURL)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", s.Timeout)
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", s.MaxRetries)
	}
	if s.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0 (got %v)", s.RequestsPerSecond)
	}
	if s.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", s.BatchSize)
	}

	langs, err := ParseLangs(s.LangRaw)
	if err != nil {
		return fmt.Errorf("lang: %w", err)
	}
	s.Langs = langs

	return nil
}

// ParseLangs parses a comma-separated language list (e.g. "ru,en").
// At least one supported language is required; duplicates are dropped.
func ParseLangs(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	langs := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !slices.Contains(supportedLangs, p) {
			return nil, fmt.Errorf("unsupported language %q", p)
		}
		if !slices.Contains(langs, p) {
			langs = append(langs, p)
		}
	}

	if len(langs) == 0 {
		return nil, fmt.Errorf("at least one language is required")
	}
	return langs, nil
}
