package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var restartFlags cli.CommandFlags

var restartCmd = &cobra.Command{
	Use:   "restart <unit> [unit...]",
	Short: "Stop then start exactly the named units",
	Long: `Restart stops then starts exactly the named units, each under its own
transition lock, concurrently. It does not touch their dependencies or
dependents.

Examples:
  wpmctl restart web-server`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRestart,
}

func init() {
	rootCmd.AddCommand(restartCmd)
	cli.RegisterCommonFlags(restartCmd, &restartFlags)
}

func runRestart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, restartFlags.Endpoint, restartFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	var results map[string]string
	err = cli.WithSpinner(restartFlags.Quiet, fmt.Sprintf("restarting %d unit(s)...", len(args)), func() error {
		var restartErr error
		results, restartErr = client.Restart(args)
		return restartErr
	})
	if err != nil {
		return err
	}

	return cli.PrintBatchResult(cmd.OutOrStdout(), results)
}
