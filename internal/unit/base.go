package unit

import "sync"

// base holds the mutable runtime record shared by every unit implementation:
// state, health, pid and last error, each protected by a single mutex, plus
// the state-change callback. setState and setHealth fire the callback after
// releasing the lock so a slow or reentrant subscriber can never deadlock a
// unit's own transition.
type base struct {
	mu sync.Mutex

	name      string
	state     State
	health    Health
	pid       int
	hasPID    bool
	lastError error

	restartAttempts int

	cb StateChangeCallback
}

func newBase(name string) base {
	return base{name: name, state: StateStopped, health: HealthUnknown}
}

func (b *base) Name() string { return b.name }

func (b *base) SetStateChangeCallback(cb StateChangeCallback) {
	b.mu.Lock()
	b.cb = cb
	b.mu.Unlock()
}

func (b *base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *base) Health() Health {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.health
}

func (b *base) PID() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pid, b.hasPID
}

func (b *base) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastError
}

// setState transitions state (and optionally health) under the lock, then
// invokes the callback outside it.
func (b *base) setState(newState State, newHealth Health) {
	b.mu.Lock()
	oldState := b.state
	b.state = newState
	b.health = newHealth
	cb := b.cb
	name := b.name
	b.mu.Unlock()

	if cb != nil && (oldState != newState) {
		cb(name, oldState, newState, newHealth)
	}
}

func (b *base) setHealth(h Health) {
	b.mu.Lock()
	state := b.state
	b.health = h
	cb := b.cb
	name := b.name
	b.mu.Unlock()

	if cb != nil {
		cb(name, state, state, h)
	}
}

func (b *base) setPID(pid int) {
	b.mu.Lock()
	b.pid = pid
	b.hasPID = true
	b.mu.Unlock()
}

func (b *base) clearPID() {
	b.mu.Lock()
	b.pid = 0
	b.hasPID = false
	b.mu.Unlock()
}

func (b *base) setLastError(err error) {
	b.mu.Lock()
	b.lastError = err
	b.mu.Unlock()
}

func (b *base) incRestartAttempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.restartAttempts++
	return b.restartAttempts
}

func (b *base) resetRestartAttempts() {
	b.mu.Lock()
	b.restartAttempts = 0
	b.mu.Unlock()
}
