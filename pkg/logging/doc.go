// Package logging provides wpm's structured logging, supporting both CLI
// mode (direct output) and TUI mode (channel-based message passing) from
// one unified API.
//
// # Log Levels
//   - Debug: detailed information for debugging and development
//   - Info: general informational messages about daemon/CLI operation
//   - Warn: warning messages that indicate potential issues
//   - Error: error messages for failures and exceptional conditions
//
// # Execution Modes
//
// CLI mode writes directly to a supplied output writer via slog.TextHandler
// and respects the configured level filter. TUI mode instead sends each
// LogEntry over a buffered channel for a terminal UI to consume and render,
// falling back to stderr if the channel is full or unset.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//	logging.Info("scheduler", "starting unit %s", name)
//	logging.Error("resourcestore", err, "failed to fetch %s", url)
//
// # Subsystem Organization
//
// Logs are tagged by subsystem for filtering: wpmd, app, ConfigLoader,
// Storage, unit, scheduler, resourcestore and control are the subsystems
// the daemon uses.
package logging
