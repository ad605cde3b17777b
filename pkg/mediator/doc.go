// Package mediator decouples the code that issues a request from the code
// that handles it. Callers send a typed request; the mediator finds the single
// handler registered for the request's type and returns its result.
//
// Request types declare their response type by embedding Returns:
//
//	type GetBalance struct {
//	    mediator.Returns[int64]
//	    Account string
//	}
//
//	m := mediator.New()
//	mediator.RegisterHandler[GetBalance, int64](m, &balanceHandler{})
//	balance, err := mediator.Send[int64](ctx, m, GetBalance{Account: "A-1"})
//
// Registering a second handler for the same request type replaces the first.
// Sending a request without a handler returns ErrHandlerNotRegistered; errors
// returned by a handler reach the caller unchanged.
package mediator
