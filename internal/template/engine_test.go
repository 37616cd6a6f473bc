package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandResourceReference(t *testing.T) {
	e := New(map[string]string{"rg": `C:\tools\rg.exe`}, nil)

	out, err := e.Expand(`{{ Resources.rg }} --version`)
	require.NoError(t, err)
	assert.Equal(t, `C:\tools\rg.exe --version`, out)
}

func TestExpandUnknownResourceKeyErrors(t *testing.T) {
	e := New(map[string]string{}, nil)

	_, err := e.Expand(`{{ Resources.missing }}`)
	require.Error(t, err)
	var unknown *UnknownResourceKeyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Key)
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("WPM_TEST_VAR", "hello")
	e := New(nil, nil)

	out, err := e.Expand("$WPM_TEST_VAR world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)

	out, err = e.Expand("%WPM_TEST_VAR% world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestExpandGoTemplateFallback(t *testing.T) {
	e := New(nil, BuildVars("myunit", map[string]string{"MODE": "prod"}))

	out, err := e.Expand(`--mode={{ .env.MODE }} --unit={{ .unit }}`)
	require.NoError(t, err)
	assert.Equal(t, "--mode=prod --unit=myunit", out)
}

func TestExpandPlainStringPassesThrough(t *testing.T) {
	e := New(nil, nil)

	out, err := e.Expand("--verbose")
	require.NoError(t, err)
	assert.Equal(t, "--verbose", out)
}
