package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSaveLoadDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir)

	data := []byte(`{"name":"web"}`)
	require.NoError(t, s.Save("web", "json", data))

	expected := filepath.Join(dir, "web.json")
	_, err := os.Stat(expected)
	require.NoError(t, err)

	loaded, err := s.Load("web", "json")
	require.NoError(t, err)
	assert.Equal(t, data, loaded)

	names, err := s.List("json")
	require.NoError(t, err)
	assert.Equal(t, []string{"web"}, names)

	require.NoError(t, s.Delete("web", "json"))
	_, err = s.Load("web", "json")
	assert.Error(t, err)
}

func TestStorageLoadMissing(t *testing.T) {
	s := NewStorage(t.TempDir())
	_, err := s.Load("missing", "json")
	assert.Error(t, err)
}

func TestStorageListEmptyDirectory(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "does-not-exist"))
	names, err := s.List("json")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"clean-name", "clean-name"},
		{"test/workflow:with*problematic?chars<>|\"", "test_workflow_with_problematic_chars"},
		{"test workflow with spaces", "test_workflow_with_spaces"},
		{" .test.workflow. ", "test_workflow"},
		{":::***", "unnamed"},
		{"test___workflow___name", "test_workflow_name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFilename(tt.input))
		})
	}
}
