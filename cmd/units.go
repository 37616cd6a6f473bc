package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var unitsFlags cli.CommandFlags

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Print the unit-file directory wpmd loads from",
	Args:  cobra.NoArgs,
	RunE:  runUnits,
}

func init() {
	rootCmd.AddCommand(unitsCmd)
	cli.RegisterConnectionFlags(unitsCmd, &unitsFlags)
}

func runUnits(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, unitsFlags.Endpoint, unitsFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	payload, err := client.Units()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), payload.Dir)
	return nil
}
