package logger

import (
	"context"

	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the request ID in and out of the service
const RequestIDHeader = "X-Request-ID"

// ContextWithRequestID stores id in ctx, generating a new one when id is empty.
func ContextWithRequestID(ctx context.Context, id string) (context.Context, string) {
	if id == "" {
		id = uuid.New().String()
	}
	return context.WithValue(ctx, RequestIDKey, id), id
}

// ContextWithSessionID stores the browser session ID in ctx.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}
