package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Exit codes for wpmctl.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error: command failed, daemon
	// unreachable, or one or more units in a batch failed.
	ExitCodeError = 1
)

// rootCmd is wpmctl's base command: the control client for a running wpmd
// daemon, plus "serve" which runs the daemon itself in the foreground.
var rootCmd = &cobra.Command{
	Use:   "wpmctl",
	Short: "Control and query the wpm Windows process-manager daemon",
	Long: `wpmctl is the command-line client for wpmd, a user-level process
manager for Windows: it starts, stops, and reports on a set of
declaratively-defined background processes ("units") with dependency
relationships, lifecycle hooks, healthchecks, and restart policies.

Run "wpmctl serve" to start the daemon in the foreground. Every other
subcommand dials the daemon's control endpoint and issues one request.`,
	SilenceUsage: true,
}

// SetVersion sets the version for the root command, injected at build time
// from main.version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is wpmctl's entry point, called from main.main.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "wpmctl version %s\n" .Version}}`)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCodeError)
	}
}
