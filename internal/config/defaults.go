package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Default retry/delay values applied by ApplyDefaults when a unit file
// omits them, per the documented data model.
const (
	defaultCommandRetryLimit = 5
	defaultRestartSec        = 1
)

// ApplyDefaults fills in a freshly-parsed unit's zero-valued fields with
// their documented defaults: a retry_limit of 5 on every hook and
// healthcheck command, and a restart_sec of 1. It must run before
// ValidateUnit so a unit that never mentions these fields gets the same
// retry/delay behavior as one that spells out the default explicitly.
func ApplyDefaults(u *Unit) {
	svc := &u.Service
	if svc.RestartSec == 0 {
		svc.RestartSec = defaultRestartSec
	}
	defaultCommands(svc.ExecStartPre)
	defaultCommands(svc.ExecStartPost)
	defaultCommands(svc.ExecStop)
	defaultCommands(svc.ExecStopPost)

	if hc := svc.Healthcheck; hc != nil {
		if hc.RetryLimit == 0 {
			hc.RetryLimit = defaultCommandRetryLimit
		}
		if hc.Command != nil {
			defaultCommand(hc.Command)
		}
	}
}

func defaultCommands(cmds []ServiceCommand) {
	for i := range cmds {
		defaultCommand(&cmds[i])
	}
}

func defaultCommand(c *ServiceCommand) {
	if c.RetryLimit == 0 {
		c.RetryLimit = defaultCommandRetryLimit
	}
}

// ExampleUnits returns a small canned set of unit definitions: a Simple
// web-facing service, a Oneshot setup task, and a Forking daemon with a
// process healthcheck. ExampleGen writes these to disk in every supported
// format so a new user has something to start from and so the loader's
// JSON and TOML code paths both get exercised by a real file on disk.
func ExampleUnits() []Unit {
	return []Unit{
		{
			Name:        "example-web",
			Description: "a simple foreground web server",
			Service: Service{
				Kind:       KindSimple,
				Executable: Executable{LocalPath: "C:\\tools\\examplesrv\\examplesrv.exe"},
				Args:       []string{"--port", "8080"},
				Env:        map[string]string{"EXAMPLE_ENV": "production"},
				Healthcheck: &Healthcheck{
					Kind: HealthcheckCommand,
					Command: &ServiceCommand{
						Executable: Executable{LocalPath: "C:\\Windows\\System32\\curl.exe"},
						Args:       []string{"-f", "http://localhost:8080/healthz"},
						RetryLimit: 5,
					},
					IntervalSec: 2,
				},
				Restart:    RestartOnFailure,
				RestartSec: 3,
				RestartMax: 5,
				Autostart:  true,
			},
		},
		{
			Name:        "example-setup",
			Description: "a one-shot provisioning task that runs once and completes",
			DependsOn:   []string{"example-web"},
			Service: Service{
				Kind:       KindOneshot,
				Executable: Executable{LocalPath: "C:\\Windows\\System32\\cmd.exe"},
				Args:       []string{"/C", "echo setup complete"},
				Restart:    RestartNever,
				Autostart:  true,
			},
		},
		{
			Name:        "example-agent",
			Description: "a forking background agent checked via process healthcheck",
			Service: Service{
				Kind:       KindForking,
				Executable: Executable{Resource: &ResourceRef{URL: "https://example.invalid/agent.exe", SHA256: "0000000000000000000000000000000000000000000000000000000000000"}},
				Args:       []string{"--daemonize"},
				Healthcheck: &Healthcheck{
					Kind:         HealthcheckProcess,
					ProcessImage: "agent.exe",
					IntervalSec:  5,
				},
				Restart: RestartAlways,
			},
		},
	}
}

// ExampleGen writes ExampleUnits to dir in every supported textual unit
// format: ".json" and ".toml" for the loader, plus a ".yaml" dump for
// readability (not itself loaded by LoadUnits).
func ExampleGen(dir string) error {
	s := NewStorage(dir)
	for _, u := range ExampleUnits() {
		jsonData, err := json.MarshalIndent(u, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling %s as json: %w", u.Name, err)
		}
		if err := s.Save(u.Name, "json", jsonData); err != nil {
			return err
		}

		var tomlBuf []byte
		tomlBuf, err = marshalTOML(u)
		if err != nil {
			return fmt.Errorf("marshaling %s as toml: %w", u.Name, err)
		}
		if err := s.Save(u.Name+".example", "toml", tomlBuf); err != nil {
			return err
		}

		yamlData, err := yaml.Marshal(u)
		if err != nil {
			return fmt.Errorf("marshaling %s as yaml: %w", u.Name, err)
		}
		if err := s.Save(u.Name+".readable", "yaml", yamlData); err != nil {
			return err
		}
	}
	return nil
}

func marshalTOML(u Unit) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(u); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
