// Package control implements the daemon's control-socket protocol: a
// length-prefixed, JSON-framed message catalog (Start, Stop, Restart, Reset,
// Reload, State, Status, Log, Rebuild, ExampleGen, Units, Shutdown) carried
// over a user-scoped local endpoint (a Windows named pipe in production, a
// Unix domain socket when built for any other platform for local testing).
//
// Server binds the endpoint and dispatches incoming requests against a
// single scheduler.Scheduler. Each connection is served on its own
// goroutine: requests from one connection are handled sequentially in
// arrival order, while requests on different connections run concurrently
// and are not queued against each other.
// Client is the counterpart wpmctl dials to send one request and read its
// reply, or to stream a unit's log until it disconnects.
package control
