package store

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const rootParentDir = "_"

// FileBackend stores every document as a JSON file:
// <basePath>/<kind>/<parent>/<key>.json
type FileBackend struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileBackend creates a new file-based backend rooted at basePath
func NewFileBackend(basePath string) (*FileBackend, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create storage directory").Wrap(err)
	}

	return &FileBackend{basePath: basePath}, nil
}

func (s *FileBackend) Get(_ context.Context, kind, parent, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.path(kind, parent, key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oops.With("kind", kind, "parent", parent, "key", key).Wrap(errors.ErrNotFound)
		}
		return nil, oops.With("path", path, "context", "failed to read document").Wrap(err)
	}

	return data, nil
}

func (s *FileBackend) Put(_ context.Context, kind, parent, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.dir(kind, parent)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return oops.With("dir", dir, "context", "failed to create document directory").Wrap(err)
	}

	// Write to a temp file first so a crash never leaves a truncated document
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return oops.With("dir", dir, "context", "failed to create temp file").Wrap(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return oops.With("path", tmp.Name(), "context", "failed to write document").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return oops.With("path", tmp.Name(), "context", "failed to close document").Wrap(err)
	}

	path := s.path(kind, parent, key)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return oops.With("path", path, "context", "failed to replace document").Wrap(err)
	}
	return nil
}

func (s *FileBackend) Delete(_ context.Context, kind, parent, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(kind, parent, key)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return oops.With("kind", kind, "parent", parent, "key", key).Wrap(errors.ErrNotFound)
		}
		return oops.With("path", path, "context", "failed to delete document").Wrap(err)
	}
	return nil
}

func (s *FileBackend) List(_ context.Context, kind, parent string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := s.dir(kind, parent)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return [][]byte{}, nil
		}
		return nil, oops.With("directory", dir, "context", "failed to read document directory").Wrap(err)
	}

	docs := lo.FilterMap(entries, func(entry os.DirEntry, _ int) ([]byte, bool) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" || strings.HasPrefix(entry.Name(), ".") {
			return nil, false
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, false
		}
		return data, true
	})

	return docs, nil
}

func (s *FileBackend) Close() error {
	return nil
}

func (s *FileBackend) dir(kind, parent string) string {
	if parent == "" {
		parent = rootParentDir
	}
	return filepath.Join(s.basePath, url.PathEscape(kind), url.PathEscape(parent))
}

func (s *FileBackend) path(kind, parent, key string) string {
	name := url.PathEscape(key)
	// Leading dots are reserved for temp files
	if strings.HasPrefix(name, ".") {
		name = "%2E" + name[1:]
	}
	return filepath.Join(s.dir(kind, parent), name+".json")
}
