//go:build windows

package control

import (
	"context"
	"net"

	winio "github.com/Microsoft/go-winio"
)

// listen binds endpoint as a Windows named pipe (e.g. `\\.\pipe\wpmd`),
// restricted to the current user's session via the default security
// descriptor go-winio applies when none is given.
func listen(endpoint string) (net.Listener, error) {
	return winio.ListenPipe(endpoint, nil)
}

// dial connects to a named pipe endpoint previously bound with listen.
func dial(ctx context.Context, endpoint string) (net.Conn, error) {
	return winio.DialPipeContext(ctx, endpoint)
}
