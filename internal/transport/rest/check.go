package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/textcheck/internal/domain"
	"github.com/heartmarshall/textcheck/internal/service/checker"
	"github.com/heartmarshall/textcheck/internal/service/fix"
)

// CheckHandler serves the check and fix endpoints.
type CheckHandler struct {
	speller       checker.Speller
	maxTextLength int
	checkTimeout  time.Duration
	log           *slog.Logger
}

// NewCheckHandler creates a CheckHandler. A zero checkTimeout leaves the
// request context as the only deadline.
func NewCheckHandler(speller checker.Speller, maxTextLength int, checkTimeout time.Duration, logger *slog.Logger) *CheckHandler {
	return &CheckHandler{
		speller:       speller,
		maxTextLength: maxTextLength,
		checkTimeout:  checkTimeout,
		log:           logger.With("handler", "check"),
	}
}

type checkRequest struct {
	Text string `json:"text"`
}

type fixRequest struct {
	Text   string         `json:"text"`
	Errors []errorPayload `json:"errors"`
}

type errorPayload struct {
	Word        string   `json:"word"`
	Pos         int      `json:"pos"`
	Suggestions []string `json:"suggestions"`
	Code        int      `json:"code"`
	Description string   `json:"description,omitempty"`
}

type checkResponse struct {
	Count  int            `json:"count"`
	Errors []errorPayload `json:"errors"`
}

type fixResponse struct {
	Text    string           `json:"text"`
	Applied []fix.AppliedFix `json:"applied"`
	Skipped []fix.SkippedFix `json:"skipped"`
}

// Check handles POST /api/v1/check.
func (h *CheckHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	text, err := h.prepare(req.Text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	records, err := h.check(r.Context(), text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{
		Count:  len(records),
		Errors: toPayloads(records),
	})
}

// Fix handles POST /api/v1/fix. Without errors in the request the text is
// checked first.
func (h *CheckHandler) Fix(w http.ResponseWriter, r *http.Request) {
	var req fixRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	text, err := h.prepare(req.Text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var records []domain.ErrorRecord
	if req.Errors != nil {
		records = fromPayloads(req.Errors)
	} else {
		records, err = h.check(r.Context(), text)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	res := fix.ApplyAll(text, records)
	h.log.DebugContext(r.Context(), "fix applied",
		slog.Int("applied", len(res.Applied)),
		slog.Int("skipped", len(res.Skipped)),
	)

	writeJSON(w, http.StatusOK, fixResponse{
		Text:    res.Text,
		Applied: res.Applied,
		Skipped: res.Skipped,
	})
}

func (h *CheckHandler) prepare(raw string) (string, error) {
	text := domain.NormalizeText(raw)
	if err := domain.ValidateText(text, h.maxTextLength); err != nil {
		return "", err
	}
	return text, nil
}

func (h *CheckHandler) check(ctx context.Context, text string) ([]domain.ErrorRecord, error) {
	if h.checkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.checkTimeout)
		defer cancel()
	}
	return checker.New(text, h.speller, h.log).Run(ctx)
}

func (h *CheckHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body too large")
	case errors.Is(err, errBadBody):
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, domain.ErrServiceUnavailable):
		h.log.WarnContext(r.Context(), "speller unavailable", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "spelling service unavailable")
	case errors.Is(err, domain.ErrInvalidResponse):
		h.log.WarnContext(r.Context(), "speller invalid response", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "INVALID_RESPONSE", "spelling service returned an invalid response")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

var errBadBody = errors.New("invalid request body")

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return errBadBody
		}
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	return nil
}

func toPayloads(records []domain.ErrorRecord) []errorPayload {
	out := make([]errorPayload, len(records))
	for i, r := range records {
		out[i] = errorPayload{
			Word:        r.Word,
			Pos:         r.Pos,
			Suggestions: r.Suggestions,
			Code:        int(r.Code),
			Description: domain.Describe(r.Code),
		}
	}
	return out
}

func fromPayloads(payloads []errorPayload) []domain.ErrorRecord {
	out := make([]domain.ErrorRecord, len(payloads))
	for i, p := range payloads {
		suggestions := p.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		out[i] = domain.ErrorRecord{
			Word:        p.Word,
			Pos:         p.Pos,
			Suggestions: suggestions,
			Code:        domain.ErrorCode(p.Code),
		}
	}
	return out
}
