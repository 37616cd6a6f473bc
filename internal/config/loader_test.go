package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUnitsAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{
		"name": "worker",
		"service": {
			"kind": "simple",
			"executable": {"local_path": "/usr/bin/worker"},
			"restart": "on-failure"
		}
	}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "worker.json"), data, 0644))

	units, err := LoadUnits(dir)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, defaultRestartSec, units[0].Service.RestartSec)
}

func TestLoadUnitsMissingDirectory(t *testing.T) {
	units, err := LoadUnits(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Nil(t, units)
}
