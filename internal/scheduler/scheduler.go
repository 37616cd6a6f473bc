package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"wpm/internal/dependency"
	"wpm/internal/unit"
	"wpm/pkg/logging"
)

// StateChangeEvent is republished from a unit's StateChangeCallback onto
// every subscriber the control server has open.
type StateChangeEvent struct {
	Unit     string
	OldState unit.State
	NewState unit.State
	Health   unit.Health
}

// Scheduler orders Start/Stop/Restart/Reset operations over a registry of
// units according to their dependency graph.
type Scheduler struct {
	registry unit.Registry
	graph    *dependency.Graph

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	subMu   sync.Mutex
	subs    map[int]chan StateChangeEvent
	nextSub int
}

// New creates a Scheduler. graph must already have passed Validate.
func New(registry unit.Registry, graph *dependency.Graph) *Scheduler {
	return &Scheduler{
		registry: registry,
		graph:    graph,
		locks:    make(map[string]*sync.Mutex),
		subs:     make(map[int]chan StateChangeEvent),
	}
}

// BindAll installs the scheduler's event-publishing callback on every unit
// currently in the registry. Call once at startup after every unit has
// been registered.
func (s *Scheduler) BindAll() {
	for _, u := range s.registry.GetAll() {
		u.SetStateChangeCallback(s.publish)
	}
}

// Bind installs the scheduler's callback on a single unit, for units added
// to the registry after startup (a config reload picking up a new file).
func (s *Scheduler) Bind(u unit.Unit) {
	u.SetStateChangeCallback(s.publish)
}

func (s *Scheduler) publish(name string, oldState, newState unit.State, health unit.Health) {
	evt := StateChangeEvent{Unit: name, OldState: oldState, NewState: newState, Health: health}

	s.subMu.Lock()
	chans := make([]chan StateChangeEvent, 0, len(s.subs))
	for _, ch := range s.subs {
		chans = append(chans, ch)
	}
	s.subMu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- evt:
		default:
			logging.Warn("scheduler", "state change subscriber channel full, dropping event for %s", name)
		}
	}
}

// Subscribe returns a channel of every subsequent state-change event and a
// cancel function that closes it. The channel is buffered and non-blocking
// sends are dropped rather than stalling the unit that produced them.
func (s *Scheduler) Subscribe() (<-chan StateChangeEvent, func()) {
	ch := make(chan StateChangeEvent, 64)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Scheduler) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func toNodeIDs(names []string) []dependency.NodeID {
	ids := make([]dependency.NodeID, len(names))
	for i, n := range names {
		ids[i] = dependency.NodeID(n)
	}
	return ids
}

// Start expands names to their full dependency closure and starts it in
// topologically-sorted batches. The returned map holds an entry for every
// unit touched, nil on success.
func (s *Scheduler) Start(ctx context.Context, names []string) map[string]error {
	closure := s.graph.Closure(toNodeIDs(names))
	batches := s.graph.TopoBatches(closure)

	results := make(map[string]error)
	var resultsMu sync.Mutex
	failed := make(map[string]bool)
	var failedMu sync.Mutex

	for _, batch := range batches {
		var wg sync.WaitGroup
		for _, id := range batch {
			name := string(id)
			wg.Add(1)
			go func(name string) {
				defer wg.Done()

				lock := s.lockFor(name)
				lock.Lock()
				defer lock.Unlock()

				blocked := false
				for _, dep := range s.graph.Dependencies(dependency.NodeID(name)) {
					failedMu.Lock()
					if failed[string(dep)] {
						blocked = true
					}
					failedMu.Unlock()
				}

				u, ok := s.registry.Get(name)
				if !ok {
					s.markFailed(name, fmt.Errorf("unit %q is not registered", name), &resultsMu, results, &failedMu, failed)
					return
				}

				if blocked {
					s.markFailed(name, fmt.Errorf("not started: a dependency failed to start"), &resultsMu, results, &failedMu, failed)
					return
				}

				err := u.Start(ctx)
				st := u.State()
				if err != nil || (st != unit.StateRunning && st != unit.StateCompleted) {
					if err == nil {
						err = fmt.Errorf("unit ended in state %s, not running or completed", st)
					}
					s.markFailed(name, err, &resultsMu, results, &failedMu, failed)
					return
				}

				resultsMu.Lock()
				results[name] = nil
				resultsMu.Unlock()
			}(name)
		}
		wg.Wait()
	}

	return results
}

func (s *Scheduler) markFailed(name string, err error, resultsMu *sync.Mutex, results map[string]error, failedMu *sync.Mutex, failed map[string]bool) {
	resultsMu.Lock()
	results[name] = err
	resultsMu.Unlock()

	failedMu.Lock()
	failed[name] = true
	failedMu.Unlock()
}

// Stop expands names to their full dependent closure and stops it in
// reverse-topologically-sorted batches, so a unit is always stopped before
// anything it depends on.
func (s *Scheduler) Stop(ctx context.Context, names []string) map[string]error {
	closure := s.graph.DependentClosure(toNodeIDs(names))
	batches := s.graph.ReverseTopoBatches(closure)

	results := make(map[string]error)
	var resultsMu sync.Mutex

	for _, batch := range batches {
		var wg sync.WaitGroup
		for _, id := range batch {
			name := string(id)
			wg.Add(1)
			go func(name string) {
				defer wg.Done()

				lock := s.lockFor(name)
				lock.Lock()
				defer lock.Unlock()

				u, ok := s.registry.Get(name)
				if !ok {
					resultsMu.Lock()
					results[name] = fmt.Errorf("unit %q is not registered", name)
					resultsMu.Unlock()
					return
				}

				err := u.Stop(ctx)
				resultsMu.Lock()
				results[name] = err
				resultsMu.Unlock()
			}(name)
		}
		wg.Wait()
	}

	return results
}

// Restart restarts exactly the named units (not their dependency or
// dependent closure), each under its own transition lock, concurrently.
func (s *Scheduler) Restart(ctx context.Context, names []string) map[string]error {
	return s.perUnit(names, func(u unit.Unit) error { return u.Restart(ctx) })
}

// Reset clears restart-attempt accounting on each named Failed unit.
func (s *Scheduler) Reset(names []string) map[string]error {
	return s.perUnit(names, func(u unit.Unit) error { return u.Reset() })
}

func (s *Scheduler) perUnit(names []string, op func(unit.Unit) error) map[string]error {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	results := make(map[string]error)
	var resultsMu sync.Mutex
	var wg sync.WaitGroup

	for _, name := range sorted {
		name := name
		wg.Add(1)
		go func() {
			defer wg.Done()

			lock := s.lockFor(name)
			lock.Lock()
			defer lock.Unlock()

			u, ok := s.registry.Get(name)
			if !ok {
				resultsMu.Lock()
				results[name] = fmt.Errorf("unit %q is not registered", name)
				resultsMu.Unlock()
				return
			}

			err := op(u)
			resultsMu.Lock()
			results[name] = err
			resultsMu.Unlock()
		}()
	}
	wg.Wait()
	return results
}
