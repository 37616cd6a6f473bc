// Package unit implements the per-unit lifecycle engine: spawning a unit's
// configured executable as a real OS process, running its lifecycle hooks,
// probing its healthcheck, applying its restart policy, and tearing it down
// on stop.
//
// # State Machine
//
// A unit moves through Stopped -> Starting -> Running -> Stopping ->
// Stopped, or for Oneshot units, Stopped -> Starting -> Completed. Any stage
// can instead land on Failed: a pre-hook or spawn failure, a healthcheck
// that never passes, or (subject to the unit's restart policy) an
// unexpected process exit.
//
// # Process Supervision
//
// ProcessUnit.Start spawns the process with os/exec and hands it off to a
// background goroutine (supervise) that blocks on cmd.Wait(). An
// intentional Stop sets a flag the supervisor checks before deciding
// whether an exit was "expected" (leading to Stopped) or "unexpected"
// (triggering the restart policy: Never, Always, or OnFailure, each with an
// optional restart_max attempt ceiling and restart_sec backoff).
//
// # Platform-Specific Pieces
//
// terminate (graceful-then-forceful process termination) and imageRunning
// (the Process healthcheck's image-name probe) are implemented once for
// Windows (terminate_windows.go, via golang.org/x/sys/windows) and once as
// a portable fallback (terminate_other.go) so the rest of the package
// — and its tests — build on any platform.
package unit
