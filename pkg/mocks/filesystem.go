package mocks

import (
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/user/streamenc/pkg/ports"
)

// FileSystem is an in-memory ports.FileSystem. Writing a file creates its
// parent directories, as the OS adapter does. Paths are cleaned before use.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// Fail, when set, is consulted before every operation; a non-nil
	// result is returned instead of touching the tree.
	Fail func(op, path string) error
}

// NewFileSystem creates an empty in-memory tree.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *FileSystem) fail(op, path string) error {
	if m.Fail == nil {
		return nil
	}
	return m.Fail(op, path)
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if err := m.fail("read", path); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, iofs.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if err := m.fail("write", path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.addDirs(filepath.Dir(path))
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if err := m.fail("mkdir", path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDirs(filepath.Clean(path))
	return nil
}

// addDirs marks dir and all of its parents. Callers hold mu.
func (m *FileSystem) addDirs(dir string) {
	for dir != "." && dir != string(filepath.Separator) && !m.dirs[dir] {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if err := m.fail("exists", path); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	path = filepath.Clean(path)
	_, isFile := m.files[path]
	return isFile || m.dirs[path], nil
}

func (m *FileSystem) Remove(path string) error {
	if err := m.fail("remove", path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if m.dirs[path] {
		delete(m.dirs, path)
		return nil
	}
	return fmt.Errorf("remove %s: %w", path, iofs.ErrNotExist)
}

// ListFiles returns the regular files directly inside dir, sorted.
func (m *FileSystem) ListFiles(dir string) ([]string, error) {
	if err := m.fail("list", dir); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	dir = filepath.Clean(dir)
	if dir != "." && !m.dirs[dir] {
		return nil, fmt.Errorf("list %s: %w", dir, iofs.ErrNotExist)
	}
	var paths []string
	for p := range m.files {
		if filepath.Dir(p) == dir {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// GetFile returns the stored contents of path.
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

// GetAllFiles returns a copy of every stored file keyed by path.
func (m *FileSystem) GetAllFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.files))
	for k, v := range m.files {
		out[k] = v
	}
	return out
}

var _ ports.FileSystem = (*FileSystem)(nil)
