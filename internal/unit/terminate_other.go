//go:build !windows

package unit

import (
	"fmt"
	"os"
	"time"
)

var signalInterrupt = os.Interrupt

// terminate is the non-Windows fallback used only for local testing of the
// scheduler/registry/control packages: wpm's supported target is Windows,
// where terminate_windows.go's CTRL_BREAK_EVENT/TerminateProcess path runs
// instead.
func (p *ProcessUnit) terminate(grace time.Duration) error {
	p.procMu.Lock()
	cmd := p.cmd
	p.procMu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return nil
	}

	_ = cmd.Process.Signal(signalInterrupt)

	done := make(chan struct{})
	go func() {
		_, _ = cmd.Process.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(grace):
		if err := cmd.Process.Kill(); err != nil {
			return fmt.Errorf("killing pid %d: %w", cmd.Process.Pid, err)
		}
		return nil
	}
}

// imageRunning always reports false on the fallback build: there is no
// portable process-listing primitive without a platform-specific API, and
// HealthcheckProcess units are expected to run only on Windows.
func imageRunning(name string) (bool, error) {
	return false, fmt.Errorf("process healthcheck for %q requires windows", name)
}
