package app

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"wpm/internal/config"
	"wpm/internal/dependency"
	"wpm/internal/resourcestore"
	"wpm/internal/scheduler"
	"wpm/internal/template"
	"wpm/internal/unit"
	"wpm/pkg/logging"
)

// Services is the assembled daemon: the resource store, unit registry,
// dependency graph and scheduler built from one load of the unit
// directory. It satisfies control.Reloader and control.Shutter so the
// control server can drive reload and shutdown without importing this
// package's concrete type.
type Services struct {
	cfg   *Config
	store *resourcestore.Store

	mu       sync.RWMutex
	registry unit.Registry
	graph    *dependency.Graph
	sched    *scheduler.Scheduler
}

// NewServices loads the unit directory and builds the registry, dependency
// graph and scheduler around it. Any load, validation or resource error is
// returned with a nil *Services.
func NewServices(cfg *Config) (*Services, error) {
	store, err := resourcestore.New(cfg.ResourceStoreRoot())
	if err != nil {
		return nil, err
	}

	s := &Services{cfg: cfg, store: store}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// UnitDir implements control.Reloader.
func (s *Services) UnitDir() string {
	return s.cfg.UnitDir
}

// Scheduler returns the current scheduler, for the control server to bind
// against.
func (s *Services) Scheduler() *scheduler.Scheduler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched
}

// Registry returns the current registry, for the control server to read
// snapshots from.
func (s *Services) Registry() unit.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// Store satisfies control.Evictor.
func (s *Services) Store() *resourcestore.Store {
	return s.store
}

// load builds a fresh registry, graph and scheduler from the unit
// directory, without touching any previously running unit. Only called
// from NewServices and Reload; neither holds mu, and load takes it only
// for the final swap.
func (s *Services) load() error {
	units, err := config.LoadUnits(s.cfg.UnitDir)
	if err != nil {
		return err
	}

	registry := unit.NewRegistry()
	graph := dependency.New()

	for _, u := range units {
		deps := make([]dependency.NodeID, 0, len(u.DependsOn))
		for _, d := range u.DependsOn {
			deps = append(deps, dependency.NodeID(d))
		}
		graph.AddNode(dependency.Node{ID: dependency.NodeID(u.Name), DependsOn: deps})
	}
	if err := graph.Validate(); err != nil {
		return err
	}

	for _, u := range units {
		resolved, err := template.ResolveResources(context.Background(), s.store, u.Service.Resources)
		if err != nil {
			return fmt.Errorf("resolving resources for unit %s: %w", u.Name, err)
		}
		vars := template.BuildVars(u.Name, u.Service.Env)
		engine := template.New(resolved, vars)
		registry.Register(unit.NewProcessUnit(u, s.store, engine, s.cfg.LogDir()))
	}

	sched := scheduler.New(registry, graph)
	sched.BindAll()

	s.mu.Lock()
	s.registry = registry
	s.graph = graph
	s.sched = sched
	s.mu.Unlock()
	return nil
}

// Reload implements control.Reloader: it re-reads the unit directory and
// swaps in a freshly built registry and scheduler. Units that still exist
// after reload start fresh runtime records (state is rebuilt from unit
// files, not preserved across the swap). Processes started under the
// previous registry are not stopped by Reload, and since Shutdown only
// walks the current registry, Shutdown does not stop them either.
func (s *Services) Reload() error {
	logging.Info("app", "reloading units from %s", s.cfg.UnitDir)
	return s.load()
}

// Autostart submits every unit with autostart=true as a single Start batch,
// letting the scheduler's dependency ordering sequence them.
func (s *Services) Autostart(ctx context.Context) map[string]error {
	s.mu.RLock()
	registry, sched := s.registry, s.sched
	s.mu.RUnlock()

	var names []string
	for _, u := range registry.GetAll() {
		if u.Config().Service.Autostart {
			names = append(names, u.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil
	}
	logging.Info("app", "autostarting units: %v", names)
	return sched.Start(ctx, names)
}

// Shutdown implements control.Shutter: it stops every non-terminal unit in
// reverse-dependency order, per the daemon's ordered shutdown sequence.
func (s *Services) Shutdown(ctx context.Context) {
	s.mu.RLock()
	registry, sched := s.registry, s.sched
	s.mu.RUnlock()

	var names []string
	for _, u := range registry.GetAll() {
		if !u.State().Terminal() {
			names = append(names, u.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return
	}
	logging.Info("app", "shutting down units: %v", names)
	for name, err := range sched.Stop(ctx, names) {
		if err != nil {
			logging.Warn("app", "stopping %s: %v", name, err)
		}
	}
}
