package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceLayer(name string, order *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name+"-before")
			next.ServeHTTP(w, r)
			*order = append(*order, name+"-after")
		})
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "check")
		w.WriteHeader(http.StatusOK)
	})

	chained := Chain(traceLayer("recovery", &order), traceLayer("request_id", &order))(handler)
	chained.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/check", nil))

	assert.Equal(t, []string{
		"recovery-before", "request_id-before", "check", "request_id-after", "recovery-after",
	}, order)
}

func TestChain_EmptyAndNilLayers(t *testing.T) {
	t.Parallel()

	var order []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "check")
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	Chain()(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// A disabled rate limiter is passed as nil.
	order = nil
	var limiter Middleware
	Chain(traceLayer("cors", &order), limiter, traceLayer("body_limit", &order))(handler).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/check", nil))
	assert.Equal(t, []string{
		"cors-before", "body_limit-before", "check", "body_limit-after", "cors-after",
	}, order)
}

func TestChain_Nested(t *testing.T) {
	t.Parallel()

	var order []string
	base := Chain(traceLayer("recovery", &order), traceLayer("logger", &order))
	api := Chain(base, traceLayer("body_limit", &order))

	api(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "check")
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/check", nil))

	assert.Equal(t, []string{
		"recovery-before", "logger-before", "body_limit-before", "check",
		"body_limit-after", "logger-after", "recovery-after",
	}, order)
}

// apiChain mirrors the order used for the check API: the request ID is
// assigned inside Recovery so a recovered panic still carries it.
func apiChain(logger *slog.Logger, maxBody int64) Middleware {
	return Chain(Recovery(logger), RequestID(), Logger(logger), BodyLimit(maxBody))
}

func TestChain_APIStack_PanicCarriesRequestID(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	handler := apiChain(logger, 1024)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("checker exploded")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", strings.NewReader(`{"text":"x"}`))
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INTERNAL", body["error"])
	assert.Contains(t, logs.String(), `"request_id":"req-1"`)
	assert.Contains(t, logs.String(), "panic recovered")
}

func TestChain_APIStack_OversizedBody(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	called := false
	handler := apiChain(logger, 8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = io.Copy(io.Discard, r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", strings.NewReader(`{"text":"far too long"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, logs.String(), `"status":413`)
	assert.Contains(t, logs.String(), `"level":"WARN"`)
}
