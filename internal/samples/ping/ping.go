package ping

import (
	"context"

	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

// Ping asks for a "pong!"
type Ping struct {
	mediator.Returns[string]
}

// Handler answers every Ping and counts how many it has answered
type Handler struct {
	Answered int
}

// NewHandler creates a ping handler
func NewHandler() *Handler {
	return &Handler{}
}

// Handle returns "pong!"
func (h *Handler) Handle(ctx context.Context, request Ping) (string, error) {
	h.Answered++
	return "pong!", nil
}

// Register registers a new ping handler on m
func Register(m *mediator.Mediator) *Handler {
	handler := NewHandler()
	mediator.RegisterHandler[Ping, string](m, handler)
	return handler
}
