package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

// PrometheusMiddleware creates a middleware that records request handling metrics
//
// This middleware wraps every handler invocation and records:
// - Handling duration (histogram)
// - Success/failure counts (counter)
// - In-flight requests (gauge)
//
// Request names are the simple type name, e.g. "*ping.Ping" becomes "Ping".
func PrometheusMiddleware(collector *DispatchMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request any, next mediator.HandlerFunc) (any, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		requestName := mediator.RequestName(request)

		collector.started(requestName)
		defer collector.finished(requestName)

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordDispatch(requestName, time.Since(start).Seconds(), err == nil)

		return response, err
	}
}
