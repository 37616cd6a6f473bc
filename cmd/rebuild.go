package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var rebuildFlags cli.CommandFlags

var rebuildCmd = &cobra.Command{
	Use:   "rebuild <unit>",
	Short: "Evict and re-resolve a unit's cached resources and executable",
	Long: `Rebuild evicts the named unit's cached executable and resource-store
entries, then re-resolves them immediately: a fresh download for any
Remote or Scoop executable, and a fresh fetch for every entry in the
unit's "resources" map. It does not restart the unit.`,
	Args: cobra.ExactArgs(1),
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
	cli.RegisterConnectionFlags(rebuildCmd, &rebuildFlags)
}

func runRebuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, rebuildFlags.Endpoint, rebuildFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	err = cli.WithSpinner(rebuildFlags.Quiet, fmt.Sprintf("rebuilding %s...", args[0]), func() error {
		return client.Rebuild(args[0])
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s rebuilt", args[0])))
	return nil
}
