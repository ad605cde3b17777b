package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/brazier-go/internal/infrastructure/config"
	"github.com/andrescamacho/brazier-go/internal/samples/ping"
	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestFailedCommandShutsDownTracing(t *testing.T) {
	// Arrange
	t.Setenv("BRAZIER_TRACING_ENABLED", "true")

	// Act
	err := execute(t, "ping", "--count", "0")

	// Assert
	require.Error(t, err)
	require.NotNil(t, current.provider)
	_, span := current.provider.Tracer("test").Start(context.Background(), "after shutdown")
	defer span.End()
	assert.False(t, span.IsRecording(), "tracer provider must be shut down after a failed command")
}

func TestSuccessfulCommandShutsDownTracing(t *testing.T) {
	t.Setenv("BRAZIER_TRACING_ENABLED", "true")

	err := execute(t, "ping")

	require.NoError(t, err)
	require.NotNil(t, current.provider)
	_, span := current.provider.Tracer("test").Start(context.Background(), "after shutdown")
	defer span.End()
	assert.False(t, span.IsRecording())
}

func TestBuildMediator_RegistriesAreIndependent(t *testing.T) {
	// Arrange
	cfg := &config.Config{Metrics: config.MetricsConfig{Enabled: true}}
	config.SetDefaults(cfg)

	first := prometheus.NewRegistry()
	second := prometheus.NewRegistry()

	m1, err := BuildMediator(cfg, nil, nil, first)
	require.NoError(t, err)
	m2, err := BuildMediator(cfg, nil, nil, second)
	require.NoError(t, err)
	ping.Register(m1)
	ping.Register(m2)

	// Act
	for i := 0; i < 2; i++ {
		_, err = mediator.Send[string](context.Background(), m1, ping.Ping{})
		require.NoError(t, err)
	}
	_, err = mediator.Send[string](context.Background(), m2, ping.Ping{})
	require.NoError(t, err)

	// Assert
	var out1, out2 bytes.Buffer
	require.NoError(t, writeMetrics(&out1, first))
	require.NoError(t, writeMetrics(&out2, second))
	assert.Contains(t, out1.String(), `brazier_mediator_requests_total{request="Ping",status="success"} 2`)
	assert.Contains(t, out2.String(), `brazier_mediator_requests_total{request="Ping",status="success"} 1`)
}

func TestBuildMediator_MetricsWithoutRegistry(t *testing.T) {
	cfg := &config.Config{Metrics: config.MetricsConfig{Enabled: true}}
	config.SetDefaults(cfg)

	_, err := BuildMediator(cfg, nil, nil, nil)

	assert.ErrorContains(t, err, "no registry")
}

func TestWriteMetrics_NilGathererPrintsNothing(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, writeMetrics(&out, nil))
	assert.Empty(t, out.String())
}
