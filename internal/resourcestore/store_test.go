package resourcestore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wpm/internal/config"
)

func fakeGet(payload []byte, calls *int32) func(ctx context.Context, url string) (io.ReadCloser, error) {
	return func(ctx context.Context, url string) (io.ReadCloser, error) {
		atomic.AddInt32(calls, 1)
		return io.NopCloser(bytes.NewReader(payload)), nil
	}
}

func TestResolveLocalPathPassesThrough(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := s.Resolve(context.Background(), config.Executable{LocalPath: "C:\\tools\\app.exe"})
	require.NoError(t, err)
	assert.Equal(t, "C:\\tools\\app.exe", path)
}

func TestResolveRemoteCachesAndVerifies(t *testing.T) {
	payload := []byte("fake binary contents")
	sum := sha256.Sum256(payload)
	sha := hex.EncodeToString(sum[:])

	s, err := New(t.TempDir())
	require.NoError(t, err)
	var calls int32
	s.httpGet = fakeGet(payload, &calls)

	e := config.Executable{Resource: &config.ResourceRef{URL: "https://example.invalid/app.exe", SHA256: sha}}

	path1, err := s.Resolve(context.Background(), e)
	require.NoError(t, err)
	path2, err := s.Resolve(context.Background(), e)
	require.NoError(t, err)

	assert.Equal(t, path1, path2)
	assert.EqualValues(t, 1, calls, "second resolve should hit the cache, not re-download")
}

func TestResolveRemoteRejectsHashMismatch(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	var calls int32
	s.httpGet = fakeGet([]byte("wrong contents"), &calls)

	e := config.Executable{Resource: &config.ResourceRef{
		URL:    "https://example.invalid/app.exe",
		SHA256: "0000000000000000000000000000000000000000000000000000000000000",
	}}

	_, err = s.Resolve(context.Background(), e)
	require.Error(t, err)
	var unavailable *ErrResourceUnavailable
	assert.True(t, errors.As(err, &unavailable))
}

func TestResolveScoopRequiresInstalledApp(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	e := config.Executable{Resource: &config.ResourceRef{Scoop: &config.ScoopRef{
		Bucket: "main", App: "ripgrep", Binary: "rg.exe",
	}}}

	_, err = s.Resolve(context.Background(), e)
	assert.Error(t, err)
}
