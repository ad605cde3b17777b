package behaviors

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

const tracerName = "github.com/andrescamacho/brazier-go/pkg/behaviors"

// Tracing creates middleware that wraps each request in a span named
// "send <Request>". Handler errors are recorded on the span and returned
// unchanged. A nil tracer uses the global tracer provider.
func Tracing(tracer trace.Tracer) mediator.Middleware {
	return func(ctx context.Context, request any, next mediator.HandlerFunc) (any, error) {
		t := tracer
		if t == nil {
			t = otel.Tracer(tracerName)
		}

		requestName := mediator.RequestName(request)
		ctx, span := t.Start(ctx, fmt.Sprintf("send %s", requestName),
			trace.WithAttributes(attribute.String("mediator.request", requestName)))
		defer span.End()

		response, err := next(ctx, request)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		return response, err
	}
}
