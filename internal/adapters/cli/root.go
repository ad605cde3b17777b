package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/andrescamacho/brazier-go/internal/infrastructure/config"
	"github.com/andrescamacho/brazier-go/internal/infrastructure/telemetry"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// runtime holds what PersistentPreRunE prepared for the subcommand
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	provider *sdktrace.TracerProvider
	// metrics is nil unless metrics are enabled
	metrics *prometheus.Registry
}

// tracer returns the tracer for dispatch spans, or nil when tracing is off
func (r runtime) tracer() trace.Tracer {
	if r.provider == nil {
		return nil
	}
	return r.provider.Tracer("github.com/andrescamacho/brazier-go/internal/adapters/cli")
}

// shutdown flushes pending spans and log entries
func (r runtime) shutdown() {
	if r.provider != nil {
		if err := r.provider.Shutdown(context.Background()); err != nil && r.logger != nil {
			r.logger.Warn("failed to flush traces", zap.Error(err))
		}
	}
	if r.logger != nil {
		_ = r.logger.Sync()
	}
}

var current runtime

// withShutdown wraps a subcommand so the runtime is shut down whether the
// command succeeds or fails. Cobra skips post-run hooks after an error.
func withShutdown(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer current.shutdown()
		return run(cmd, args)
	}
}

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brazier",
		Short: "brazier - dispatch typed requests through an in-process mediator",
		Long: `brazier sends requests through a mediator to the handler registered for
their type. The bundled handlers show a stateless handler (ping) and a
stateful, database-backed handler (counter).

Examples:
  brazier ping --count 3
  brazier counter incr visits --by 2
  brazier counter get visits
  brazier config show`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}

			logger, err := config.NewLogger(cfg.Logging)
			if err != nil {
				return err
			}

			current = runtime{cfg: cfg, logger: logger}

			if cfg.Metrics.Enabled {
				current.metrics = prometheus.NewRegistry()
			}

			if cfg.Tracing.Enabled {
				provider, err := telemetry.NewTracerProvider(cmd.Context(), cfg.Tracing, cmd.ErrOrStderr())
				if err != nil {
					current.shutdown()
					return fmt.Errorf("failed to set up tracing: %w", err)
				}
				current.provider = provider
			}
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: brazier.yaml in ., ./configs or /etc/brazier)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewPingCommand())
	rootCmd.AddCommand(NewCounterCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// registerer returns where dispatch metrics are registered, or nil when
// metrics are off
func (r runtime) registerer() prometheus.Registerer {
	if r.metrics == nil {
		return nil
	}
	return r.metrics
}

// gatherer returns the registry to print after a run, or nil when metrics
// are off
func (r runtime) gatherer() prometheus.Gatherer {
	if r.metrics == nil {
		return nil
	}
	return r.metrics
}
