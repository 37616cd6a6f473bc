package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

var logFlags cli.CommandFlags

var logCmd = &cobra.Command{
	Use:   "log <unit>",
	Short: "Stream a unit's log lines until interrupted",
	Long: `Log prints the named unit's per-unit capture file from its beginning,
then streams new lines as they are appended, until the connection is
closed (Ctrl-C) or wpmd shuts the stream down.`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
	cli.RegisterConnectionFlags(logCmd, &logFlags)
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := cli.Dial(ctx, logFlags.Endpoint, logFlags.Quiet)
	if err != nil {
		return err
	}
	defer client.Close()

	out := cmd.OutOrStdout()
	return client.StreamLog(ctx, args[0], func(line string) error {
		_, err := fmt.Fprintln(out, line)
		return err
	})
}
