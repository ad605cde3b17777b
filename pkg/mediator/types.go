package mediator

import (
	"context"
)

// Request is implemented by every request type whose handling produces a
// TResponse. Types opt in by embedding Returns[TResponse]:
//
//	type Ping struct {
//	    mediator.Returns[string]
//	}
//
// A type embedding two different Returns has an ambiguous method and
// satisfies neither Request, so a request type maps to exactly one response type.
type Request[TResponse any] interface {
	respondsWith(TResponse)
}

// Returns marks the embedding type as a request answered with a TResponse
type Returns[TResponse any] struct{}

func (Returns[TResponse]) respondsWith(TResponse) {}

// Unit is the response type of requests that produce no value
type Unit struct{}

// RequestHandler handles one request type
type RequestHandler[TRequest Request[TResponse], TResponse any] interface {
	Handle(ctx context.Context, request TRequest) (TResponse, error)
}

// HandleFunc adapts a plain function to RequestHandler
type HandleFunc[TRequest Request[TResponse], TResponse any] func(ctx context.Context, request TRequest) (TResponse, error)

// Handle calls f(ctx, request)
func (f HandleFunc[TRequest, TResponse]) Handle(ctx context.Context, request TRequest) (TResponse, error) {
	return f(ctx, request)
}

// HandlerFunc is the untyped form of a handler invocation seen by middleware
type HandlerFunc func(ctx context.Context, request any) (any, error)

// Middleware is a function that wraps handler execution with cross-cutting concerns
// Examples: logging, validation, metrics, rate limiting
type Middleware func(ctx context.Context, request any, next HandlerFunc) (any, error)
