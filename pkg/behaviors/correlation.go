package behaviors

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

// WithRequestID injects a request ID into the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// Correlation creates middleware that makes sure every request carries an ID.
// An ID already present in the context is kept, so nested sends share the
// ID of the outer request.
func Correlation() mediator.Middleware {
	return func(ctx context.Context, request any, next mediator.HandlerFunc) (any, error) {
		if _, ok := RequestIDFromContext(ctx); !ok {
			ctx = WithRequestID(ctx, uuid.NewString())
		}
		return next(ctx, request)
	}
}
