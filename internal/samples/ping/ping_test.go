package ping_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/brazier-go/internal/samples/ping"
	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

func TestPing_ReturnsPong(t *testing.T) {
	m := mediator.New()
	handler := ping.Register(m)

	result, err := mediator.Send[string](context.Background(), m, ping.Ping{})

	require.NoError(t, err)
	assert.Equal(t, "pong!", result)
	assert.Equal(t, 1, handler.Answered)
}
