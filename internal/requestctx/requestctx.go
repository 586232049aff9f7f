// Package requestctx stores per-request values on the context so domain
// packages can log a request ID without importing the transport layer.
package requestctx

import "context"

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request ID, or "" when none was attached.
func GetRequestID(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}
