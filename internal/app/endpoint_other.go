//go:build !windows

package app

import (
	"os"
	"path/filepath"
)

// DefaultEndpoint returns the Unix domain socket path used on non-Windows
// platforms, mirroring wpmd.sock's role under the daemon's state root.
func DefaultEndpoint() string {
	root, err := DefaultStateRoot()
	if err != nil {
		return filepath.Join(os.TempDir(), "wpmd.sock")
	}
	return filepath.Join(root, "wpmd.sock")
}
