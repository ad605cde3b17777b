package mediator

import (
	"errors"
)

var (
	// ErrHandlerNotRegistered is returned by Send when no handler is registered
	// for the request type. Register the handler before sending.
	ErrHandlerNotRegistered = errors.New("handler not registered")

	// ErrUnexpectedResponse is returned when middleware produced a value that
	// is not the response type of the request.
	ErrUnexpectedResponse = errors.New("unexpected response type")

	// ErrUnexpectedRequest is returned when middleware passed a request of a
	// different type down the chain.
	ErrUnexpectedRequest = errors.New("unexpected request type")

	// ErrReentrantSend is returned in concurrent mode when a handler sends a
	// request of its own type from inside Handle.
	ErrReentrantSend = errors.New("reentrant send for request type")
)

// IsHandlerNotRegistered reports whether err is, or wraps, ErrHandlerNotRegistered
func IsHandlerNotRegistered(err error) bool {
	return errors.Is(err, ErrHandlerNotRegistered)
}
