package unit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wpm/internal/config"
)

type identityExpander struct{}

func (identityExpander) Expand(s string) (string, error) { return s, nil }

type noopResolver struct{}

func (noopResolver) Resolve(ctx context.Context, e config.Executable) (string, error) {
	return e.LocalPath, nil
}

func waitForState(t *testing.T, u Unit, want State, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if u.State() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %s, last state was %s", want, u.State())
}

func TestProcessUnitOneshotCompletes(t *testing.T) {
	cfg := config.Unit{
		Name: "setup",
		Service: config.Service{
			Kind:       config.KindOneshot,
			Executable: config.Executable{LocalPath: "/bin/true"},
			Restart:    config.RestartNever,
		},
	}
	u := NewProcessUnit(cfg, noopResolver{}, identityExpander{}, "")

	err := u.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, u.State())
}

func TestProcessUnitSimpleStartStop(t *testing.T) {
	cfg := config.Unit{
		Name: "sleeper",
		Service: config.Service{
			Kind:       config.KindSimple,
			Executable: config.Executable{LocalPath: "/bin/sleep"},
			Args:       []string{"30"},
			Restart:    config.RestartNever,
		},
	}
	u := NewProcessUnit(cfg, noopResolver{}, identityExpander{}, "")

	require.NoError(t, u.Start(context.Background()))
	assert.Equal(t, StateRunning, u.State())
	pid, ok := u.PID()
	assert.True(t, ok)
	assert.Greater(t, pid, 0)

	require.NoError(t, u.Stop(context.Background()))
	assert.Equal(t, StateStopped, u.State())
	_, ok = u.PID()
	assert.False(t, ok)
}

func TestProcessUnitRestartOnFailure(t *testing.T) {
	cfg := config.Unit{
		Name: "flaky",
		Service: config.Service{
			Kind:       config.KindSimple,
			Executable: config.Executable{LocalPath: "/bin/false"},
			Restart:    config.RestartOnFailure,
			RestartMax: 2,
		},
	}
	u := NewProcessUnit(cfg, noopResolver{}, identityExpander{}, "")

	require.NoError(t, u.Start(context.Background()))
	waitForState(t, u, StateFailed, 2*time.Second)
	assert.Error(t, u.LastError())
}

func TestProcessUnitOneshotFailureStateVisibleOnReturn(t *testing.T) {
	cfg := config.Unit{
		Name: "bad-setup",
		Service: config.Service{
			Kind:       config.KindOneshot,
			Executable: config.Executable{LocalPath: "/bin/false"},
			Restart:    config.RestartNever,
		},
	}
	u := NewProcessUnit(cfg, noopResolver{}, identityExpander{}, "")

	require.NoError(t, u.Start(context.Background()))
	assert.Equal(t, StateFailed, u.State())
	assert.Error(t, u.LastError())
}

func TestProcessUnitHealthcheckWaitsBeforeFirstProbe(t *testing.T) {
	cfg := config.Unit{
		Name: "checked",
		Service: config.Service{
			Kind:       config.KindSimple,
			Executable: config.Executable{LocalPath: "/bin/sleep"},
			Args:       []string{"5"},
			Healthcheck: &config.Healthcheck{
				Kind:        config.HealthcheckProcess,
				IntervalSec: 1,
				RetryLimit:  1,
			},
			Restart: config.RestartNever,
		},
	}
	u := NewProcessUnit(cfg, noopResolver{}, identityExpander{}, "")

	start := time.Now()
	require.NoError(t, u.Start(context.Background()))
	elapsed := time.Since(start)

	assert.Equal(t, StateRunning, u.State())
	assert.GreaterOrEqual(t, elapsed, time.Second, "the healthcheck must wait interval_secs before its first probe")

	require.NoError(t, u.Stop(context.Background()))
}

func TestProcessUnitResetRequiresFailedState(t *testing.T) {
	cfg := config.Unit{
		Name: "idle",
		Service: config.Service{
			Kind:       config.KindSimple,
			Executable: config.Executable{LocalPath: "/bin/sleep"},
			Args:       []string{"1"},
		},
	}
	u := NewProcessUnit(cfg, noopResolver{}, identityExpander{}, "")
	assert.Error(t, u.Reset())
}

func TestProcessUnitStateChangeCallback(t *testing.T) {
	cfg := config.Unit{
		Name: "callback-unit",
		Service: config.Service{
			Kind:       config.KindOneshot,
			Executable: config.Executable{LocalPath: "/bin/true"},
		},
	}
	u := NewProcessUnit(cfg, noopResolver{}, identityExpander{}, "")

	var transitions []State
	u.SetStateChangeCallback(func(name string, oldState, newState State, health Health) {
		transitions = append(transitions, newState)
	})

	require.NoError(t, u.Start(context.Background()))
	assert.Contains(t, transitions, StateStarting)
	assert.Contains(t, transitions, StateCompleted)
}
