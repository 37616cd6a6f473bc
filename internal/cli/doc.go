// Package cli provides the shared plumbing behind wpmctl's subcommands:
// connecting to the daemon's control endpoint with a progress spinner,
// common flag registration (--endpoint, --quiet, --output), and the
// go-pretty table rendering used by "state" and "status".
//
// Every subcommand in cmd/ follows the same shape: register flags, dial
// the daemon via Dial, issue one internal/control.Client call, and render
// the reply. This package exists so that shape isn't repeated verbatim in
// every command file.
package cli
