package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wpm/internal/cli"
)

// versionCheckTimeout bounds how long "version" waits for the daemon
// before reporting it unreachable.
const versionCheckTimeout = 2 * time.Second

var versionEndpoint string

// newVersionCmd creates the Cobra command for displaying the application
// version. It displays both the CLI version (from build-time injection)
// and whether wpmd is reachable at the configured control endpoint.
func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of wpmctl and report daemon reachability",
		Long: `Displays the wpmctl CLI version and, if wpmd is running, the unit
directory it reports via the control endpoint.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wpmctl version %s\n", rootCmd.Version)

			dir, err := daemonUnitDir(versionEndpoint)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\nDaemon: not running\n")
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nDaemon: running (unit directory: %s)\n", dir)
		},
	}
	c.Flags().StringVar(&versionEndpoint, "endpoint", cli.GetDefaultEndpoint(), "wpmd control endpoint (env: WPM_ENDPOINT)")
	return c
}

// daemonUnitDir dials endpoint and asks for the unit directory wpmd is
// watching, used as a lightweight reachability probe since the control
// protocol has no dedicated version handshake.
func daemonUnitDir(endpoint string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), versionCheckTimeout)
	defer cancel()

	client, err := cli.Dial(ctx, endpoint, true)
	if err != nil {
		return "", fmt.Errorf("daemon not running: %w", err)
	}
	defer client.Close()

	payload, err := client.Units()
	if err != nil {
		return "", err
	}
	return payload.Dir, nil
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
