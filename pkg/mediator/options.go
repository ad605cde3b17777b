package mediator

import (
	"go.uber.org/zap"
)

// Option configures a Mediator
type Option func(*Mediator)

// WithLogger sets the logger used for registration and release events.
// The default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mediator) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMiddleware appends middleware to the dispatch pipeline
func WithMiddleware(middleware ...Middleware) Option {
	return func(m *Mediator) {
		m.middleware = append(m.middleware, middleware...)
	}
}

// WithConcurrentDispatch makes the mediator safe for concurrent use.
// Sends for different request types may run in parallel; sends for the same
// request type are serialized so a handler never runs concurrently with itself.
//
// Because the handler holds its type's lock while it runs, a handler must not
// re-register its own request type: that waits on itself forever. A nested
// Send of its own request type is detected through the context and fails
// with ErrReentrantSend.
func WithConcurrentDispatch() Option {
	return func(m *Mediator) {
		m.concurrent = true
	}
}
