package cli

import (
	"os"

	"github.com/spf13/cobra"

	"wpm/internal/app"
)

// CommandFlags holds the flag values every wpmctl subcommand that talks to
// the daemon registers: where to dial it, how chatty to be about it, and
// how results should be rendered.
type CommandFlags struct {
	// Endpoint overrides the control endpoint (named pipe path on Windows,
	// socket path elsewhere) wpmctl dials.
	Endpoint string
	// Quiet suppresses the connecting/working spinner.
	Quiet bool
	// OutputFormat selects table or json rendering for state/status.
	OutputFormat string
}

// RegisterCommonFlags registers --endpoint, --quiet and --output on cmd.
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().StringVar(&flags.Endpoint, "endpoint", GetDefaultEndpoint(), "wpmd control endpoint (env: WPM_ENDPOINT)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress progress spinners")
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", "table", "output format (table, json)")
}

// RegisterConnectionFlags registers just --endpoint and --quiet, for
// commands (reload, rebuild, shutdown, ...) with no formatted output of
// their own.
func RegisterConnectionFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().StringVar(&flags.Endpoint, "endpoint", GetDefaultEndpoint(), "wpmd control endpoint (env: WPM_ENDPOINT)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress progress spinners")
}

// GetDefaultEndpoint returns the WPM_ENDPOINT environment override if set,
// otherwise the platform's well-known control socket/pipe path.
func GetDefaultEndpoint() string {
	if v := os.Getenv("WPM_ENDPOINT"); v != "" {
		return v
	}
	return app.DefaultEndpoint()
}
