package api

import "context"

type contextKey string

const requestIDKey contextKey = "api_request_id"

// WithRequestID attaches a correlation id that the client sends as
// X-Request-ID. Without one the client generates a fresh id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom extracts the correlation id from the context.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
