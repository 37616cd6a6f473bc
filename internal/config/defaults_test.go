package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaultsFillsOmittedFields(t *testing.T) {
	u := Unit{
		Name: "worker",
		Service: Service{
			Kind:          KindSimple,
			Executable:    Executable{LocalPath: "/usr/bin/worker"},
			ExecStartPre:  []ServiceCommand{{Executable: Executable{LocalPath: "/bin/true"}}},
			ExecStartPost: []ServiceCommand{{Executable: Executable{LocalPath: "/bin/true"}}},
			Healthcheck: &Healthcheck{
				Kind:    HealthcheckCommand,
				Command: &ServiceCommand{Executable: Executable{LocalPath: "/bin/true"}},
			},
		},
	}

	ApplyDefaults(&u)

	assert.Equal(t, defaultRestartSec, u.Service.RestartSec)
	assert.Equal(t, defaultCommandRetryLimit, u.Service.ExecStartPre[0].RetryLimit)
	assert.Equal(t, defaultCommandRetryLimit, u.Service.ExecStartPost[0].RetryLimit)
	assert.Equal(t, defaultCommandRetryLimit, u.Service.Healthcheck.RetryLimit)
	assert.Equal(t, defaultCommandRetryLimit, u.Service.Healthcheck.Command.RetryLimit)
}

func TestApplyDefaultsLeavesExplicitValues(t *testing.T) {
	u := Unit{
		Name: "worker",
		Service: Service{
			Kind:       KindSimple,
			Executable: Executable{LocalPath: "/usr/bin/worker"},
			RestartSec: 10,
			Healthcheck: &Healthcheck{
				Kind:       HealthcheckProcess,
				RetryLimit: 2,
			},
		},
	}

	ApplyDefaults(&u)

	assert.Equal(t, 10, u.Service.RestartSec)
	assert.Equal(t, 2, u.Service.Healthcheck.RetryLimit)
}

func TestApplyDefaultsNoHealthcheck(t *testing.T) {
	u := Unit{
		Name: "worker",
		Service: Service{
			Kind:       KindOneshot,
			Executable: Executable{LocalPath: "/usr/bin/worker"},
		},
	}

	assert.NotPanics(t, func() { ApplyDefaults(&u) })
	assert.Equal(t, defaultRestartSec, u.Service.RestartSec)
}
