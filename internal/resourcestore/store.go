// Package resourcestore resolves a unit's configured Executable or
// ServiceCommand into a local, runnable path, fetching and
// content-addressed-caching remote resources as needed.
package resourcestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"wpm/internal/config"
	"wpm/pkg/logging"
)

// ErrResourceUnavailable is returned when a resource cannot be fetched or
// fails verification, wrapping the underlying cause.
type ErrResourceUnavailable struct {
	Descriptor string
	Cause      error
}

func (e *ErrResourceUnavailable) Error() string {
	return fmt.Sprintf("resource %s unavailable: %v", e.Descriptor, e.Cause)
}

func (e *ErrResourceUnavailable) Unwrap() error { return e.Cause }

// Store is the on-disk resource cache. It lays out two subtrees under its
// root: "store/" for content-addressed downloads keyed by sha256, and
// "pkg/" reserved for future package-manager-managed artifacts that are not
// themselves content-addressed.
type Store struct {
	root string
	sf   singleflight.Group

	// httpGet is overridable in tests.
	httpGet func(ctx context.Context, url string) (io.ReadCloser, error)
}

// New creates a Store rooted at root, creating the directory if needed.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, "store"), 0755); err != nil {
		return nil, fmt.Errorf("creating resource store at %s: %w", root, err)
	}
	if err := os.MkdirAll(filepath.Join(root, "pkg"), 0755); err != nil {
		return nil, fmt.Errorf("creating resource store at %s: %w", root, err)
	}
	return &Store{root: root, httpGet: defaultHTTPGet}, nil
}

func defaultHTTPGet(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Resolve returns a local path for e, fetching and caching it first if it
// names a remote or Scoop-managed resource. A bare local_path is returned
// unchanged (callers are expected to have already template-expanded it).
func (s *Store) Resolve(ctx context.Context, e config.Executable) (string, error) {
	if !e.IsResource() {
		return e.LocalPath, nil
	}
	ref := e.Resource

	if ref.Scoop != nil {
		return s.resolveScoop(ref.Scoop)
	}
	return s.resolveRemote(ctx, ref)
}

// Evict removes e's cached file, if any, so the next Resolve call downloads
// it again. Used by the control server's Rebuild(name) handler. A LocalPath
// or Scoop executable has nothing cached to evict and this is a no-op.
func (s *Store) Evict(e config.Executable) error {
	if !e.IsResource() || e.Resource.Scoop != nil {
		return nil
	}
	dest := s.destPath(e.Resource)
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("evicting %s: %w", e.Resource.URL, err)
	}
	return nil
}

func (s *Store) destPath(ref *config.ResourceRef) string {
	if ref.SHA256 != "" {
		return filepath.Join(s.root, "store", ref.SHA256[:2], ref.SHA256+".exe")
	}
	sum := sha256.Sum256([]byte(ref.URL))
	return filepath.Join(s.root, "store", "url", hex.EncodeToString(sum[:])+".exe")
}

func (s *Store) resolveScoop(scoop *config.ScoopRef) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &ErrResourceUnavailable{Descriptor: scoop.App, Cause: err}
	}
	path := filepath.Join(home, "scoop", "apps", scoop.App, "current", scoop.Binary)
	if _, err := os.Stat(path); err != nil {
		return "", &ErrResourceUnavailable{Descriptor: scoop.App, Cause: fmt.Errorf("scoop app %s not installed at %s: %w", scoop.App, path, err)}
	}
	return path, nil
}

func (s *Store) resolveRemote(ctx context.Context, ref *config.ResourceRef) (string, error) {
	key := ref.URL
	if ref.SHA256 != "" {
		key = ref.SHA256
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.fetchAndVerify(ctx, ref)
	})
	if err != nil {
		return "", &ErrResourceUnavailable{Descriptor: ref.URL, Cause: err}
	}
	return v.(string), nil
}

func (s *Store) fetchAndVerify(ctx context.Context, ref *config.ResourceRef) (string, error) {
	dest := s.destPath(ref)

	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", err
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}

	body, err := s.httpGet(ctx, ref.URL)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	defer body.Close()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(f, hasher), body); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}

	if ref.SHA256 != "" {
		sum := hex.EncodeToString(hasher.Sum(nil))
		if sum != ref.SHA256 {
			os.Remove(tmp)
			return "", fmt.Errorf("sha256 mismatch: expected %s, got %s", ref.SHA256, sum)
		}
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", err
	}

	logging.Info("resourcestore", "cached %s -> %s", ref.URL, dest)
	return dest, nil
}
