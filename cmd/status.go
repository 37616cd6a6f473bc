package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var statusFlags cli.CommandFlags

var statusCmd = &cobra.Command{
	Use:   "status <unit>",
	Short: "Show one unit's current record and log tail",
	Long: `Status returns a single unit's full runtime record (state, health, pid,
last error) plus the tail of its per-unit log file.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	cli.RegisterCommonFlags(statusCmd, &statusFlags)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := cli.Dial(ctx, statusFlags.Endpoint, statusFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	payload, err := client.Status(args[0])
	if err != nil {
		return err
	}

	if statusFlags.OutputFormat == "json" {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	cli.RenderStatus(cmd.OutOrStdout(), payload)
	return nil
}
