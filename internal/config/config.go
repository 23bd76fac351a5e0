package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Speller   SpellerConfig   `yaml:"speller"`
	Checker   CheckerConfig   `yaml:"checker"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"1048576"`
}

// SpellerConfig holds settings of the remote spelling service client.
type SpellerConfig struct {
	BaseURL              string        `yaml:"base_url"              env:"SPELLER_BASE_URL"              env-default:"https://speller.yandex.net/services/spellservice.json"`
	LangRaw              string        `yaml:"lang"                  env:"SPELLER_LANG"                  env-default:"ru,en"`
	Timeout              time.Duration `yaml:"timeout"               env:"SPELLER_TIMEOUT"               env-default:"10s"`
	MaxRetries           int           `yaml:"max_retries"           env:"SPELLER_MAX_RETRIES"           env-default:"0"`
	RetryDelay           time.Duration `yaml:"retry_delay"           env:"SPELLER_RETRY_DELAY"           env-default:"500ms"`
	RequestsPerSecond    float64       `yaml:"requests_per_second"   env:"SPELLER_REQUESTS_PER_SECOND"   env-default:"10"`
	Burst                int           `yaml:"burst"                 env:"SPELLER_BURST"                 env-default:"5"`
	IgnoreDigits         bool          `yaml:"ignore_digits"         env:"SPELLER_IGNORE_DIGITS"         env-default:"false"`
	IgnoreURLs           bool          `yaml:"ignore_urls"           env:"SPELLER_IGNORE_URLS"           env-default:"true"`
	FindRepeatWords      bool          `yaml:"find_repeat_words"     env:"SPELLER_FIND_REPEAT_WORDS"     env-default:"true"`
	IgnoreCapitalization bool          `yaml:"ignore_capitalization" env:"SPELLER_IGNORE_CAPITALIZATION" env-default:"false"`
	BatchWait            time.Duration `yaml:"batch_wait"            env:"SPELLER_BATCH_WAIT"            env-default:"20ms"`
	BatchSize            int           `yaml:"batch_size"            env:"SPELLER_BATCH_SIZE"            env-default:"20"`

	// Langs is parsed from LangRaw during validation.
	Langs []string `yaml:"-" env:"-"`
}

// CheckerConfig holds limits applied before text reaches the checker.
type CheckerConfig struct {
	MaxTextLength int           `yaml:"max_text_length" env:"CHECKER_MAX_TEXT_LENGTH" env-default:"10000"`
	CheckTimeout  time.Duration `yaml:"check_timeout"   env:"CHECKER_CHECK_TIMEOUT"   env-default:"30s"`
	Concurrency   int           `yaml:"concurrency"     env:"CHECKER_CONCURRENCY"     env-default:"4"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client HTTP rate limiting settings.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"60"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}
