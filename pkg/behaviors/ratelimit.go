package behaviors

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

// RateLimit creates middleware that waits for a token from limiter before
// invoking the handler. It returns early with the context error if ctx is
// done while waiting. A nil limiter disables the middleware.
func RateLimit(limiter *rate.Limiter) mediator.Middleware {
	return func(ctx context.Context, request any, next mediator.HandlerFunc) (any, error) {
		if limiter == nil {
			return next(ctx, request)
		}

		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait for %s: %w", mediator.RequestName(request), err)
		}

		return next(ctx, request)
	}
}
