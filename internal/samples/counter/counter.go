package counter

import (
	"context"
	"fmt"

	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

// Repository stores named counters
type Repository interface {
	Increment(ctx context.Context, name string, by int64) (int64, error)
	Get(ctx context.Context, name string) (int64, error)
}

// Increment adds By to the named counter and returns the new total
type Increment struct {
	mediator.Returns[int64]
	Name string `validate:"required,max=64"`
	By   int64  `validate:"min=1"`
}

// Get returns the total of the named counter
type Get struct {
	mediator.Returns[int64]
	Name string `validate:"required"`
}

// IncrementHandler handles Increment requests
type IncrementHandler struct {
	repo Repository
	// handled counts increments served by this handler instance
	handled int
}

// NewIncrementHandler creates a new increment handler
func NewIncrementHandler(repo Repository) *IncrementHandler {
	return &IncrementHandler{repo: repo}
}

// Handle executes the increment
func (h *IncrementHandler) Handle(ctx context.Context, request *Increment) (int64, error) {
	total, err := h.repo.Increment(ctx, request.Name, request.By)
	if err != nil {
		return 0, err
	}
	h.handled++
	return total, nil
}

// Handled returns the number of increments this handler served
func (h *IncrementHandler) Handled() int {
	return h.handled
}

// GetHandler handles Get requests
type GetHandler struct {
	repo Repository
}

// NewGetHandler creates a new get handler
func NewGetHandler(repo Repository) *GetHandler {
	return &GetHandler{repo: repo}
}

// Handle executes the query
func (h *GetHandler) Handle(ctx context.Context, request *Get) (int64, error) {
	total, err := h.repo.Get(ctx, request.Name)
	if err != nil {
		return 0, fmt.Errorf("get counter: %w", err)
	}
	return total, nil
}

// Register registers the counter handlers on m
func Register(m *mediator.Mediator, repo Repository) *mediator.Mediator {
	mediator.RegisterHandler[*Increment, int64](m, NewIncrementHandler(repo))
	return mediator.RegisterHandler[*Get, int64](m, NewGetHandler(repo))
}
