// Package app wires together the unit directory, resource store, template
// engine, registry and scheduler into the running daemon, and exposes the
// Reload/Shutdown/Autostart entry points the control server and wpmd's
// signal handling drive.
package app
