package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var stopFlags cli.CommandFlags

var stopCmd = &cobra.Command{
	Use:   "stop <unit> [unit...]",
	Short: "Stop one or more units, and whatever depends on them",
	Long: `Stop submits a Stop batch for the named units. The scheduler computes the
reverse dependency closure: any unit the requested set depends on is left
running, and any unit that transitively depends on a requested unit is
stopped first, in reverse topological order.

Examples:
  wpmctl stop worker-pool
  wpmctl stop web-server worker-pool`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
	cli.RegisterCommonFlags(stopCmd, &stopFlags)
}

func runStop(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, stopFlags.Endpoint, stopFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	var results map[string]string
	err = cli.WithSpinner(stopFlags.Quiet, fmt.Sprintf("stopping %d unit(s)...", len(args)), func() error {
		var stopErr error
		results, stopErr = client.Stop(args)
		return stopErr
	})
	if err != nil {
		return err
	}

	return cli.PrintBatchResult(cmd.OutOrStdout(), results)
}
