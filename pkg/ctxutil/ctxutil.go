package ctxutil

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	checkIDKey   ctxKey = "check_id"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithCheckID stores the ID of the running check in the context.
func WithCheckID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, checkIDKey, id)
}

// CheckIDFromCtx extracts the check ID from the context.
// Returns an empty string if absent.
func CheckIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(checkIDKey).(string)
	return id
}
