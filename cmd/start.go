package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var startFlags cli.CommandFlags

var startCmd = &cobra.Command{
	Use:   "start <unit> [unit...]",
	Short: "Start one or more units, in dependency order",
	Long: `Start submits a Start batch for the named units to wpmd. The scheduler
computes the transitive closure of each unit's "requires" dependencies and
starts them in topological order; independent units at the same dependency
level start in parallel. If a dependency does not reach Running or
Completed, every unit that transitively depends on it is reported as
failed in the result without ever being spawned; the state of such a unit
is left as it was.

Examples:
  wpmctl start web-server
  wpmctl start web-server worker-pool`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
	cli.RegisterCommonFlags(startCmd, &startFlags)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, startFlags.Endpoint, startFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	var results map[string]string
	err = cli.WithSpinner(startFlags.Quiet, fmt.Sprintf("starting %d unit(s)...", len(args)), func() error {
		var startErr error
		results, startErr = client.Start(args)
		return startErr
	})
	if err != nil {
		return err
	}

	return cli.PrintBatchResult(cmd.OutOrStdout(), results)
}
