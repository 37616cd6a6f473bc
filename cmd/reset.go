package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var resetFlags cli.CommandFlags

var resetCmd = &cobra.Command{
	Use:   "reset <unit> [unit...]",
	Short: "Clear a Failed unit's state back to Stopped",
	Long: `Reset clears a terminal Failed state back to Stopped without executing
anything -- no hooks run, no process is spawned. Units not currently
Failed are left untouched.

Examples:
  wpmctl reset web-server`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
	cli.RegisterCommonFlags(resetCmd, &resetFlags)
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, resetFlags.Endpoint, resetFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	results, err := client.Reset(args)
	if err != nil {
		return err
	}

	return cli.PrintBatchResult(cmd.OutOrStdout(), results)
}
