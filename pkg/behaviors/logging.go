package behaviors

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

// Context keys for passing request-scoped values through context
type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// Logging creates middleware that logs every dispatched request with its
// duration and outcome. The handler receives a logger annotated with the
// request name (and request ID when Correlation runs first) via LoggerFromContext.
func Logging(logger *zap.Logger) mediator.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(ctx context.Context, request any, next mediator.HandlerFunc) (any, error) {
		fields := []zap.Field{zap.String("request", mediator.RequestName(request))}
		if id, ok := RequestIDFromContext(ctx); ok {
			fields = append(fields, zap.String("request_id", id))
		}
		scoped := logger.With(fields...)

		start := time.Now()
		response, err := next(WithLogger(ctx, scoped), request)
		elapsed := time.Since(start)

		if err != nil {
			scoped.Warn("request failed", zap.Duration("duration", elapsed), zap.Error(err))
		} else {
			scoped.Debug("request handled", zap.Duration("duration", elapsed))
		}

		return response, err
	}
}
