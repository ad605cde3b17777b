package behaviors_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/andrescamacho/brazier-go/pkg/behaviors"
	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

func newRecordingTracer(t *testing.T) (*tracetest.SpanRecorder, trace.Tracer) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return recorder, provider.Tracer("test")
}

func TestTracing_RecordsSpanPerRequest(t *testing.T) {
	// Arrange
	recorder, tracer := newRecordingTracer(t)
	m := mediator.New(mediator.WithMiddleware(behaviors.Tracing(tracer)))
	mediator.RegisterHandlerFunc[captureRequest, string](m, func(ctx context.Context, request captureRequest) (string, error) {
		if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
			return "", errors.New("span missing from handler context")
		}
		return "ok", nil
	})

	// Act
	result, err := mediator.Send[string](context.Background(), m, captureRequest{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", result)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "send captureRequest", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("mediator.request", "captureRequest"))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestTracing_MarksFailedRequests(t *testing.T) {
	recorder, tracer := newRecordingTracer(t)
	handlerErr := errors.New("boom")
	m := mediator.New(mediator.WithMiddleware(behaviors.Tracing(tracer)))
	mediator.RegisterHandlerFunc[captureRequest, string](m, func(ctx context.Context, request captureRequest) (string, error) {
		return "", handlerErr
	})

	_, err := mediator.Send[string](context.Background(), m, captureRequest{})

	assert.Same(t, handlerErr, err)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}
