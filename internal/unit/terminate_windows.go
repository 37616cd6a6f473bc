//go:build windows

package unit

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// terminate asks the unit's process to exit gracefully via CTRL_BREAK_EVENT
// and escalates to TerminateProcess if it has not exited within grace.
func (p *ProcessUnit) terminate(grace time.Duration) error {
	p.procMu.Lock()
	cmd := p.cmd
	p.procMu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	pid := uint32(cmd.Process.Pid)

	_ = windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, pid)

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
			return fmt.Errorf("TerminateProcess pid %d: %w", pid, err)
		}
		return nil
	}
}

// imageRunning reports whether a process whose image (executable) file name
// matches name is currently running, via a toolhelp snapshot.
func imageRunning(name string) (bool, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return false, fmt.Errorf("CreateToolhelp32Snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Process32First(snapshot, &entry); err != nil {
		return false, nil
	}
	for {
		exe := windows.UTF16ToString(entry.ExeFile[:])
		if exe == name {
			return true, nil
		}
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			break
		}
	}
	return false, nil
}
