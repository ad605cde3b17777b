package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/brazier-go/internal/adapters/persistence"
	"github.com/andrescamacho/brazier-go/internal/infrastructure/database"
	"github.com/andrescamacho/brazier-go/internal/samples/counter"
	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

// NewCounterCommand creates the counter command with subcommands
func NewCounterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Increment and read named counters stored in the database",
		Long: `Dispatch counter requests to a handler backed by the configured database.

Examples:
  brazier counter incr visits
  brazier counter incr visits --by 5
  brazier counter get visits`,
	}

	cmd.AddCommand(newCounterIncrCommand())
	cmd.AddCommand(newCounterGetCommand())

	return cmd
}

func newCounterIncrCommand() *cobra.Command {
	var by int64

	cmd := &cobra.Command{
		Use:   "incr NAME",
		Short: "Increment a counter and print its new total",
		Args:  cobra.ExactArgs(1),
		RunE: withShutdown(func(cmd *cobra.Command, args []string) error {
			return withCounterMediator(func(m *mediator.Mediator) error {
				total, err := mediator.Send[int64](cmd.Context(), m, &counter.Increment{Name: args[0], By: by})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %d\n", args[0], total)
				return writeMetrics(cmd.OutOrStdout(), current.gatherer())
			})
		}),
	}

	cmd.Flags().Int64Var(&by, "by", 1, "Amount to add")

	return cmd
}

func newCounterGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print the total of a counter",
		Args:  cobra.ExactArgs(1),
		RunE: withShutdown(func(cmd *cobra.Command, args []string) error {
			return withCounterMediator(func(m *mediator.Mediator) error {
				total, err := mediator.Send[int64](cmd.Context(), m, &counter.Get{Name: args[0]})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %d\n", args[0], total)
				return nil
			})
		}),
	}
}

// withCounterMediator connects to the database, registers the counter
// handlers and runs fn
func withCounterMediator(fn func(m *mediator.Mediator) error) error {
	db, err := database.NewConnection(&current.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m, err := BuildMediator(current.cfg, current.logger, current.tracer(), current.registerer())
	if err != nil {
		return err
	}
	defer m.Close()

	counter.Register(m, persistence.NewGormCounterRepository(db))

	return fn(m)
}
