package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/brazier-go/internal/samples/ping"
	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

// NewPingCommand creates the ping command
func NewPingCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Send Ping requests and print the replies",
		Long: `Register the ping handler and send it one or more Ping requests.

Examples:
  brazier ping
  brazier ping --count 3`,
		Args: cobra.NoArgs,
		RunE: withShutdown(func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			m, err := BuildMediator(current.cfg, current.logger, current.tracer(), current.registerer())
			if err != nil {
				return err
			}
			defer m.Close()

			ping.Register(m)

			for i := 0; i < count; i++ {
				reply, err := mediator.Send[string](cmd.Context(), m, ping.Ping{})
				if err != nil {
					return fmt.Errorf("ping failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), reply)
			}

			return writeMetrics(cmd.OutOrStdout(), current.gatherer())
		}),
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of pings to send")

	return cmd
}
