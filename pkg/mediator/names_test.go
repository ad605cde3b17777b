package mediator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

type generic[T any] struct{}

func TestRequestName(t *testing.T) {
	tests := []struct {
		name     string
		request  any
		expected string
	}{
		{"value", testRequest{}, "testRequest"},
		{"pointer", &echoRequest{}, "echoRequest"},
		{"generic", generic[int]{}, "generic"},
		{"builtin", 3, "int"},
		{"nil", nil, "UnknownRequest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mediator.RequestName(tt.request))
		})
	}
}
