// Package draft persists the most recently edited invoice so a session
// can be recovered. Drafts live in an opaque key-value blob store under
// a single fixed key; absent or malformed records always read back as
// "no draft".
package draft

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Blob is the opaque key-value store drafts are written to.
type Blob interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, data []byte) error
	Delete(key string) error
}

// FileBlob stores each key as a file inside a directory.
type FileBlob struct {
	dir string
}

// NewFileBlob creates a file-backed blob store, creating the directory
// if needed.
func NewFileBlob(dir string) (*FileBlob, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBlob{dir: dir}, nil
}

func (b *FileBlob) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Get returns the stored value, with found=false for a missing key.
func (b *FileBlob) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put stores the value under the key, replacing any previous value.
func (b *FileBlob) Put(key string, data []byte) error {
	return os.WriteFile(b.path(key), data, 0o644)
}

// Delete removes the key. Deleting a missing key is not an error.
func (b *FileBlob) Delete(key string) error {
	err := os.Remove(b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
