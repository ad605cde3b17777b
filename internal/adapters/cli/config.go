package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect brazier configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (BRAZIER_* prefix, DATABASE_URL)
2. Config file (brazier.yaml)
3. Default values

Example:
  brazier config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: withShutdown(func(cmd *cobra.Command, args []string) error {
			cfg := current.cfg
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "brazier Configuration")
			fmt.Fprintln(out, "=====================")

			fmt.Fprintln(out, "Logging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nDispatch:")
			fmt.Fprintf(out, "  Concurrent:       %t\n", cfg.Dispatch.Concurrent)
			if cfg.Dispatch.RateLimit.Enabled() {
				fmt.Fprintf(out, "  Rate Limit:       %g req/s (burst: %d)\n",
					cfg.Dispatch.RateLimit.Requests, cfg.Dispatch.RateLimit.Burst)
			} else {
				fmt.Fprintf(out, "  Rate Limit:       (disabled)\n")
			}

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Namespace:        %s\n", cfg.Metrics.Namespace)

			fmt.Fprintln(out, "\nTracing:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Tracing.Enabled)
			fmt.Fprintf(out, "  Exporter:         %s\n", cfg.Tracing.Exporter)
			if cfg.Tracing.Exporter == "otlp" {
				fmt.Fprintf(out, "  Endpoint:         %s\n", cfg.Tracing.Endpoint)
			}
			fmt.Fprintf(out, "  Service Name:     %s\n", cfg.Tracing.ServiceName)

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			return nil
		}),
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
