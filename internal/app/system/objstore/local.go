// internal/app/system/objstore/local.go
package objstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects to a directory on disk. The urlPrefix is
// the route the files are served from (the /files fileserver mount).
type LocalStore struct {
	root      string
	urlPrefix string
}

// NewLocal builds a disk-backed store, creating the root directory if
// needed.
func NewLocal(root, urlPrefix string) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("objstore: local root path is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("objstore: create root %q: %w", root, err)
	}
	return &LocalStore{
		root:      root,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, opts *PutOptions) error {
	// Keys are server generated, but reject traversal anyway.
	clean := filepath.Clean(strings.TrimPrefix(key, "/"))
	if strings.HasPrefix(clean, "..") {
		return fmt.Errorf("objstore: invalid key %q", key)
	}

	dest := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("objstore: create dir for %q: %w", key, err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("objstore: create %q: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("objstore: write %q: %w", key, err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return s.urlPrefix + "/" + strings.TrimPrefix(key, "/")
}
