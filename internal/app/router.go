package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/textcheck/internal/config"
	"github.com/heartmarshall/textcheck/internal/transport/middleware"
	"github.com/heartmarshall/textcheck/internal/transport/rest"
)

// NewRouter builds the HTTP handler: health probes plus the check API.
// Every route runs behind Recovery, RequestID and Logger; the API adds CORS,
// the optional per-IP rate limiter and the body size limit. The returned
// stop func releases the rate limiter and must be called on shutdown.
func NewRouter(cfg *config.Config, speller *Speller, logger *slog.Logger) (http.Handler, func()) {
	base := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
	)

	var limit middleware.Middleware
	stop := func() {}
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		limit = rl.Limit(cfg.RateLimit.PerMinute)
		stop = rl.Stop
	}

	api := middleware.Chain(
		base,
		middleware.CORS(cfg.CORS),
		limit,
		middleware.BodyLimit(cfg.Server.MaxBodyBytes),
	)

	checkHandler := rest.NewCheckHandler(speller, cfg.Checker.MaxTextLength, cfg.Checker.CheckTimeout, logger)
	healthHandler := rest.NewHealthHandler(speller.Provider, cfg.Speller.Timeout, BuildVersion())

	mux := http.NewServeMux()
	mux.Handle("GET /live", base(http.HandlerFunc(healthHandler.Live)))
	mux.Handle("GET /ready", base(http.HandlerFunc(healthHandler.Ready)))
	mux.Handle("GET /health", base(http.HandlerFunc(healthHandler.Health)))
	mux.Handle("POST /api/v1/check", api(http.HandlerFunc(checkHandler.Check)))
	mux.Handle("POST /api/v1/fix", api(http.HandlerFunc(checkHandler.Fix)))
	mux.Handle("OPTIONS /api/v1/", api(http.NotFoundHandler()))

	return mux, stop
}
