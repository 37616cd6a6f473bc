package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUnit(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(contents), 0644))
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := NewConfig(t.TempDir(), t.TempDir(), "", true)
	require.NoError(t, err)
	return cfg
}

func TestNewServicesLoadsUnits(t *testing.T) {
	cfg := testConfig(t)
	writeUnit(t, cfg.UnitDir, "hello", `{
		"name": "hello",
		"service": {"kind": "oneshot", "executable": {"local_path": "/bin/true"}, "restart": "never"}
	}`)

	svc, err := NewServices(cfg)
	require.NoError(t, err)

	u, ok := svc.Registry().Get("hello")
	require.True(t, ok)
	assert.Equal(t, "hello", u.Name())
}

func TestNewServicesRejectsCycle(t *testing.T) {
	cfg := testConfig(t)
	writeUnit(t, cfg.UnitDir, "a", `{
		"name": "a", "depends_on": ["b"],
		"service": {"kind": "oneshot", "executable": {"local_path": "/bin/true"}}
	}`)
	writeUnit(t, cfg.UnitDir, "b", `{
		"name": "b", "depends_on": ["a"],
		"service": {"kind": "oneshot", "executable": {"local_path": "/bin/true"}}
	}`)

	_, err := NewServices(cfg)
	assert.Error(t, err)
}

func TestReloadPicksUpNewUnit(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewServices(cfg)
	require.NoError(t, err)

	_, ok := svc.Registry().Get("late")
	assert.False(t, ok)

	writeUnit(t, cfg.UnitDir, "late", `{
		"name": "late",
		"service": {"kind": "oneshot", "executable": {"local_path": "/bin/true"}}
	}`)
	require.NoError(t, svc.Reload())

	_, ok = svc.Registry().Get("late")
	assert.True(t, ok)
}

func TestAutostartOnlyStartsFlaggedUnits(t *testing.T) {
	cfg := testConfig(t)
	writeUnit(t, cfg.UnitDir, "auto", `{
		"name": "auto",
		"service": {"kind": "oneshot", "executable": {"local_path": "/bin/true"}, "autostart": true}
	}`)
	writeUnit(t, cfg.UnitDir, "manual", `{
		"name": "manual",
		"service": {"kind": "oneshot", "executable": {"local_path": "/bin/true"}}
	}`)

	svc, err := NewServices(cfg)
	require.NoError(t, err)

	errs := svc.Autostart(context.Background())
	_, started := errs["auto"]
	assert.True(t, started)
	_, alsoStarted := errs["manual"]
	assert.False(t, alsoStarted)
}

func TestWatchTriggersReloadOnNewFile(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewServices(cfg)
	require.NoError(t, err)

	stopCh := make(chan struct{})
	defer close(stopCh)
	require.NoError(t, svc.Watch(stopCh))

	writeUnit(t, cfg.UnitDir, "watched", `{
		"name": "watched",
		"service": {"kind": "oneshot", "executable": {"local_path": "/bin/true"}}
	}`)

	require.Eventually(t, func() bool {
		_, ok := svc.Registry().Get("watched")
		return ok
	}, 3*time.Second, 50*time.Millisecond)
}
