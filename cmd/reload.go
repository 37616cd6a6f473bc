package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var reloadFlags cli.CommandFlags

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Re-read the unit directory",
	Long: `Reload asks wpmd to re-read its unit directory and swap in the result.
Every unit in the new registry starts out Stopped, including units that
were already registered: runtime records are not carried across a reload.
Processes started before the reload are not stopped by it, and units
removed from disk are no longer registered.

A LoadError (name collision, missing dependency, cycle, schema violation)
leaves the previous registry in place and is reported here.`,
	Args: cobra.NoArgs,
	RunE: runReload,
}

func init() {
	rootCmd.AddCommand(reloadCmd)
	cli.RegisterConnectionFlags(reloadCmd, &reloadFlags)
}

func runReload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, reloadFlags.Endpoint, reloadFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Reload(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("unit directory reloaded"))
	return nil
}
