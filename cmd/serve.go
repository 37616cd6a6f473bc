package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"wpm/internal/app"
	"wpm/internal/cli"
	"wpm/internal/control"
	"wpm/pkg/logging"
)

var (
	serveUnitDir   string
	serveStateRoot string
	serveEndpoint  string
	serveDebug     bool
)

// serveCmd runs wpmd in the foreground: it loads the unit directory,
// assembles the registry/scheduler/resource store, binds the control
// endpoint, autostarts every unit with autostart=true, and blocks until
// a Shutdown control message or OS interrupt drives the ordered shutdown
// sequence.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the wpmd process-manager daemon in the foreground",
	Long: `Serve starts wpmd: it loads every unit file from the unit directory,
builds the dependency graph and scheduler, binds the control endpoint
(a named pipe on Windows, a Unix socket elsewhere), autostarts every unit
with autostart=true, and watches the unit directory for changes.

It runs until it receives the Shutdown control message or an OS
interrupt (Ctrl-C), at which point every non-terminal unit is stopped in
reverse-dependency order before the process exits.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveUnitDir, "unit-dir", "", "directory to load unit files from (default: $USERPROFILE\\.wpm\\units)")
	serveCmd.Flags().StringVar(&serveStateRoot, "state-root", "", "root directory for the resource cache and logs (default: %LOCALAPPDATA%\\wpm)")
	serveCmd.Flags().StringVar(&serveEndpoint, "endpoint", "", "control endpoint to bind (default: the platform well-known pipe/socket)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "enable debug logging")
}

func runServe(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if serveDebug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	cfg, err := app.NewConfig(serveUnitDir, serveStateRoot, serveEndpoint, serveDebug)
	if err != nil {
		return fmt.Errorf("building daemon configuration: %w", err)
	}

	services, err := app.NewServices(cfg)
	if err != nil {
		return fmt.Errorf("loading units from %s: %w", cfg.UnitDir, err)
	}

	server := control.NewServer(cfg.Endpoint, services.Registry(), services.Scheduler(), services.Store(), services, services)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		logging.Info("wpmd", "interrupt received, shutting down")
		services.Shutdown(context.Background())
		cancel()
	}()

	stopWatch := make(chan struct{})
	defer close(stopWatch)
	if err := services.Watch(stopWatch); err != nil {
		logging.Warn("wpmd", "unit directory watch not started: %v", err)
	}

	go func() {
		if errs := services.Autostart(ctx); len(errs) > 0 {
			for name, err := range errs {
				if err != nil {
					logging.Warn("wpmd", "autostarting %s: %v", name, err)
				}
			}
		}
	}()

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("wpmd listening on %s", cfg.Endpoint)))

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("control server: %w", err)
	}
	return nil
}
