package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var shutdownFlags cli.CommandFlags

var shutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Trigger orderly daemon termination",
	Long: `Shutdown asks wpmd to stop every unit whose state is not
Stopped/Failed/Completed, in reverse-dependency order, and then exit.
wpmctl returns as soon as the request is acknowledged; it does not wait
for the shutdown sequence to finish.`,
	Args: cobra.NoArgs,
	RunE: runShutdown,
}

func init() {
	rootCmd.AddCommand(shutdownCmd)
	cli.RegisterConnectionFlags(shutdownCmd, &shutdownFlags)
}

func runShutdown(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, shutdownFlags.Endpoint, shutdownFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Shutdown(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("shutdown requested"))
	return nil
}
