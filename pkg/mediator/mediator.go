package mediator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/andrescamacho/brazier-go/internal/registry"
)

// Mediator dispatches requests to their handlers.
//
// Without WithConcurrentDispatch the mediator does no locking: Send and
// RegisterHandler must not be called concurrently on the same instance.
type Mediator struct {
	handlers   *registry.TypeMap
	middleware []Middleware
	logger     *zap.Logger
	concurrent bool
	mu         sync.RWMutex
}

// slot owns one registered handler. mu serializes invocations of the handler
// in concurrent mode.
type slot struct {
	mu       sync.Mutex
	handler  any
	released bool
}

// New creates a mediator with an empty registry
func New(opts ...Option) *Mediator {
	m := &Mediator{
		handlers: registry.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Use appends middleware to the dispatch pipeline.
// The first middleware registered is the outermost.
func (m *Mediator) Use(middleware ...Middleware) *Mediator {
	m.lock()
	defer m.unlock()

	m.middleware = append(m.middleware, middleware...)
	return m
}

// RegisterHandler registers handler for TRequest, replacing any handler
// registered earlier for the same type. The replaced handler is released:
// if it implements io.Closer it is closed.
//
// RegisterHandler returns m so registrations can be chained. It panics if
// handler is nil, including a typed nil pointer.
func RegisterHandler[TRequest Request[TResponse], TResponse any](m *Mediator, handler RequestHandler[TRequest, TResponse]) *Mediator {
	if isNil(handler) {
		panic(fmt.Sprintf("mediator: nil handler for %s", registry.KeyOf[TRequest]()))
	}

	m.lock()
	previous, replaced := registry.Set[TRequest](m.handlers, &slot{handler: handler})
	m.unlock()

	requestType := registry.KeyOf[TRequest]()
	if replaced {
		m.logger.Debug("replaced request handler",
			zap.Stringer("request", requestType),
			zap.String("handler", fmt.Sprintf("%T", handler)))
		if err := m.release(previous.(*slot)); err != nil {
			m.logger.Warn("failed to release replaced handler",
				zap.Stringer("request", requestType),
				zap.Error(err))
		}
	} else {
		m.logger.Debug("registered request handler",
			zap.Stringer("request", requestType),
			zap.String("handler", fmt.Sprintf("%T", handler)))
	}

	return m
}

// RegisterHandlerFunc registers a plain function as the handler for TRequest
func RegisterHandlerFunc[TRequest Request[TResponse], TResponse any](m *Mediator, fn func(ctx context.Context, request TRequest) (TResponse, error)) *Mediator {
	if fn == nil {
		panic(fmt.Sprintf("mediator: nil handler func for %s", registry.KeyOf[TRequest]()))
	}
	return RegisterHandler[TRequest, TResponse](m, HandleFunc[TRequest, TResponse](fn))
}

// IsRegistered reports whether a handler is registered for TRequest
func IsRegistered[TRequest any](m *Mediator) bool {
	m.rlock()
	defer m.runlock()

	_, ok := m.handlers.Lookup(registry.KeyOf[TRequest]())
	return ok
}

// Send dispatches request to the handler registered for its static type and
// returns the handler's result. Errors returned by the handler are passed
// through unchanged. If no handler is registered Send returns
// ErrHandlerNotRegistered.
func Send[TResponse any, TRequest Request[TResponse]](ctx context.Context, m *Mediator, request TRequest) (TResponse, error) {
	var zero TResponse

	s, handler, middleware, err := acquire[TRequest, TResponse](ctx, m)
	if err != nil {
		return zero, err
	}
	defer m.releaseSlot(s)

	if m.concurrent {
		ctx = context.WithValue(ctx, heldSlot{s}, true)
	}

	// Direct dispatch when no middleware is configured
	if len(middleware) == 0 {
		return handler.Handle(ctx, request)
	}

	final := func(ctx context.Context, req any) (any, error) {
		typed, ok := req.(TRequest)
		if !ok {
			return nil, fmt.Errorf("%w: expected %s, got %T", ErrUnexpectedRequest, registry.KeyOf[TRequest](), req)
		}
		return handler.Handle(ctx, typed)
	}

	response, err := chain(middleware, final)(ctx, request)
	if err != nil {
		typed, _ := response.(TResponse)
		return typed, err
	}

	if response == nil {
		return zero, nil
	}

	typed, ok := response.(TResponse)
	if !ok {
		return zero, fmt.Errorf("%w: expected %s, got %T", ErrUnexpectedResponse, reflect.TypeFor[TResponse](), response)
	}

	return typed, nil
}

// Len returns the number of registered handlers
func (m *Mediator) Len() int {
	m.rlock()
	defer m.runlock()

	return m.handlers.Len()
}

// Close releases every registered handler and empties the registry.
// Handlers implementing io.Closer are closed; their errors are joined.
func (m *Mediator) Close() error {
	m.lock()
	slots := make([]*slot, 0, m.handlers.Len())
	m.handlers.Range(func(_ reflect.Type, value any) bool {
		slots = append(slots, value.(*slot))
		return true
	})
	m.handlers.Clear()
	m.unlock()

	var errs []error
	for _, s := range slots {
		if err := m.release(s); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// heldSlot marks a context whose send currently holds the slot lock
type heldSlot struct {
	s *slot
}

// acquire resolves the handler for TRequest. In concurrent mode the returned
// slot is locked and must be handed back with releaseSlot.
func acquire[TRequest Request[TResponse], TResponse any](ctx context.Context, m *Mediator) (*slot, RequestHandler[TRequest, TResponse], []Middleware, error) {
	for {
		m.rlock()
		s, ok := registry.Get[TRequest, *slot](m.handlers)
		middleware := m.middleware
		m.runlock()

		if !ok {
			return nil, nil, nil, ErrHandlerNotRegistered
		}

		handler, ok := s.handler.(RequestHandler[TRequest, TResponse])
		if !ok {
			return nil, nil, nil, ErrHandlerNotRegistered
		}

		if !m.concurrent {
			return s, handler, middleware, nil
		}

		if ctx.Value(heldSlot{s}) != nil {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrReentrantSend, registry.KeyOf[TRequest]())
		}

		s.mu.Lock()
		if !s.released {
			return s, handler, middleware, nil
		}
		// Replaced while waiting; resolve again
		s.mu.Unlock()
	}
}

func (m *Mediator) releaseSlot(s *slot) {
	if m.concurrent {
		s.mu.Unlock()
	}
}

// release marks s as released and closes its handler when it is an io.Closer.
// In concurrent mode it waits for an in-flight invocation to finish first.
func (m *Mediator) release(s *slot) error {
	if m.concurrent {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	if s.released {
		return nil
	}
	s.released = true

	if closer, ok := s.handler.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close handler %T: %w", s.handler, err)
		}
	}

	return nil
}

func isNil(handler any) bool {
	if handler == nil {
		return true
	}
	value := reflect.ValueOf(handler)
	switch value.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan, reflect.Interface:
		return value.IsNil()
	}
	return false
}

func chain(middleware []Middleware, final HandlerFunc) HandlerFunc {
	next := final
	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		inner := next
		next = func(ctx context.Context, request any) (any, error) {
			return mw(ctx, request, inner)
		}
	}
	return next
}

func (m *Mediator) lock() {
	if m.concurrent {
		m.mu.Lock()
	}
}

func (m *Mediator) unlock() {
	if m.concurrent {
		m.mu.Unlock()
	}
}

func (m *Mediator) rlock() {
	if m.concurrent {
		m.mu.RLock()
	}
}

func (m *Mediator) runlock() {
	if m.concurrent {
		m.mu.RUnlock()
	}
}
