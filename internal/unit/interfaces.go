// Package unit implements the lifecycle engine: spawning, supervising,
// health-checking and tearing down the real OS process backing a single
// configured unit.
package unit

import (
	"context"

	"wpm/internal/config"
)

// Unit is the runtime handle the scheduler and control server drive. One
// Unit is created per configured config.Unit and lives for the daemon's
// whole lifetime, cycling through states as it is started and stopped.
type Unit interface {
	// Name returns the unit's configured name.
	Name() string

	// Config returns the static configuration this unit was built from, for
	// callers (the control server's Status/State/Rebuild handlers) that need
	// to report a unit's kind, description or resource references without
	// threading the registry's config.Unit set through separately.
	Config() config.Unit

	// LogPath returns the path of this unit's stdout+stderr capture file, or
	// "" if none is configured.
	LogPath() string

	// Start spawns the unit's process (after running exec_start_pre hooks
	// and waiting for the healthcheck, if any, to pass) and returns once the
	// unit has reached Running, Completed, or Failed. It is a no-op if the
	// unit is already Running.
	Start(ctx context.Context) error

	// Stop runs exec_stop hooks, signals the process to exit, and escalates
	// to a forceful termination if it does not exit within the grace
	// period. It is a no-op if the unit is already Stopped.
	Stop(ctx context.Context) error

	// Restart is Stop followed by Start; restart policy retry accounting is
	// not affected by an explicit Restart (only by an unexpected exit).
	Restart(ctx context.Context) error

	// Reset clears a Failed unit's state back to Stopped and its restart
	// attempt counter back to zero, without starting it.
	Reset() error

	State() State
	Health() Health
	PID() (int, bool)
	LastError() error

	// SetStateChangeCallback installs the callback invoked on every state
	// or health transition. The scheduler's BindAll installs it on every
	// registered unit to feed the scheduler's event bus.
	SetStateChangeCallback(cb StateChangeCallback)
}

// Registry holds every configured unit's runtime handle, keyed by name.
type Registry interface {
	Register(u Unit)
	Get(name string) (Unit, bool)
	GetAll() []Unit
	Remove(name string)
}
