package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/brazier-go/internal/adapters/cli"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func useTempDatabase(t *testing.T) {
	t.Helper()
	t.Setenv("BRAZIER_DATABASE_TYPE", "sqlite")
	t.Setenv("BRAZIER_DATABASE_PATH", filepath.Join(t.TempDir(), "brazier.db"))
}

func TestPingCommand(t *testing.T) {
	out, err := runCLI(t, "ping", "--count", "2")

	require.NoError(t, err)
	assert.Equal(t, "pong!\npong!\n", out)
}

func TestPingCommand_WithMetrics(t *testing.T) {
	t.Setenv("BRAZIER_METRICS_ENABLED", "true")

	out, err := runCLI(t, "ping", "-n", "3")

	require.NoError(t, err)
	assert.Contains(t, out, `brazier_mediator_requests_total{request="Ping",status="success"} 3`)
}

func TestPingCommand_WithTracing(t *testing.T) {
	t.Setenv("BRAZIER_TRACING_ENABLED", "true")

	out, err := runCLI(t, "ping")

	require.NoError(t, err)
	assert.Contains(t, out, "pong!")
	assert.Contains(t, out, `"Name": "send Ping"`)
}

func TestPingCommand_InvalidCount(t *testing.T) {
	_, err := runCLI(t, "ping", "--count", "0")

	assert.Error(t, err)
}

func TestCounterCommands(t *testing.T) {
	useTempDatabase(t)

	out, err := runCLI(t, "counter", "incr", "visits", "--by", "2")
	require.NoError(t, err)
	assert.Equal(t, "visits = 2\n", out)

	out, err = runCLI(t, "counter", "incr", "visits")
	require.NoError(t, err)
	assert.Equal(t, "visits = 3\n", out)

	out, err = runCLI(t, "counter", "get", "visits")
	require.NoError(t, err)
	assert.Equal(t, "visits = 3\n", out)
}

func TestCounterCommands_ValidationFailure(t *testing.T) {
	useTempDatabase(t)

	_, err := runCLI(t, "counter", "incr", "visits", "--by", "0")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation: min")
}

func TestCounterCommands_UnknownCounter(t *testing.T) {
	useTempDatabase(t)

	_, err := runCLI(t, "counter", "get", "nothing")

	assert.ErrorContains(t, err, "counter not found")
}

func TestConfigShow(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://brazier:secret@db:5432/brazier")
	t.Setenv("BRAZIER_DATABASE_TYPE", "postgres")
	t.Setenv("BRAZIER_DISPATCH_RATE_LIMIT_REQUESTS", "10")

	out, err := runCLI(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Type:             postgres")
	assert.Contains(t, out, "postgresql://brazier:xxxxx@db:5432/brazier")
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "10 req/s (burst: 1)")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	t.Setenv("BRAZIER_LOGGING_LEVEL", "loud")

	_, err := runCLI(t, "ping")

	assert.ErrorContains(t, err, "invalid configuration")
}
