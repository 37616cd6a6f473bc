package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var exampleGenFlags cli.CommandFlags

var exampleGenCmd = &cobra.Command{
	Use:   "examplegen <dir>",
	Short: "Write a small set of canned example unit files to dir",
	Long: `ExampleGen asks wpmd to write a canned Simple web-facing unit, a
OneShot setup unit, and a Forking process-healthcheck unit to dir, in
both supported textual formats (.json and .toml), plus a readable .yaml
dump of each -- a starting point for writing real unit files.`,
	Args: cobra.ExactArgs(1),
	RunE: runExampleGen,
}

func init() {
	rootCmd.AddCommand(exampleGenCmd)
	cli.RegisterConnectionFlags(exampleGenCmd, &exampleGenFlags)
}

func runExampleGen(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, exampleGenFlags.Endpoint, exampleGenFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.ExampleGen(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("example units written to %s", args[0])))
	return nil
}
