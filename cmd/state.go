package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var stateFlags cli.CommandFlags

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show every unit's current state",
	Long: `State returns a snapshot of every registered unit: name, kind, state,
health, and pid where running. Snapshot reads never block a unit's
transition.`,
	Args: cobra.NoArgs,
	RunE: runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	cli.RegisterCommonFlags(stateCmd, &stateFlags)
}

func runState(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, stateFlags.Endpoint, stateFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	payload, err := client.State()
	if err != nil {
		return err
	}

	if stateFlags.OutputFormat == "json" {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	cli.RenderState(cmd.OutOrStdout(), payload.Units)
	return nil
}
