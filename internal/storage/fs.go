package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/spf13/afero"
)

// FileStore writes objects under a filesystem root. Plain files carry no
// attributes, so metadata goes into a <key>.meta.json sidecar. Used for local
// runs and hermetic tests (afero.NewMemMapFs).
type FileStore struct {
	fs   afero.Fs
	root string
}

// NewFileStore creates a store rooted at root on the given filesystem.
func NewFileStore(fs afero.Fs, root string) *FileStore {
	return &FileStore{fs: fs, root: root}
}

// Put writes the keyed object and its metadata sidecar.
func (s *FileStore) Put(_ context.Context, key string, data []byte, _ string, metadata map[string]string) error {
	full := path.Join(s.root, key)
	if err := s.fs.MkdirAll(path.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := afero.WriteFile(s.fs, full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	meta, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata for %s: %w", key, err)
	}
	if err := afero.WriteFile(s.fs, full+".meta.json", meta, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata for %s: %w", key, err)
	}
	return nil
}

// URI returns the file:// location of the keyed object.
func (s *FileStore) URI(key string) string {
	return "file://" + path.Join(s.root, key)
}
