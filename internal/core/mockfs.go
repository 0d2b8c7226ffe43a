package core

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// MockFileSystem is an in-memory FileSystem for tests.
// Paths are stored in slash form; directories are implied by file paths.
type MockFileSystem struct {
	mu     sync.RWMutex
	files  map[string][]byte
	modes  map[string]os.FileMode
	denied map[string]bool

	ReadErr  error
	WriteErr error
	StatErr  error

	// Writes records every path passed to WriteFile, in call order.
	Writes []string
}

// NewMockFileSystem returns an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:  make(map[string][]byte),
		modes:  make(map[string]os.FileMode),
		denied: make(map[string]bool),
	}
}

var _ FileSystem = (*MockFileSystem)(nil)

func clean(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// SetFile stores content at path with mode 0644.
func (m *MockFileSystem) SetFile(p string, data []byte) {
	m.SetFileMode(p, data, PermDefault)
}

// SetFileMode stores content at path with the given mode.
func (m *MockFileSystem) SetFileMode(p string, data []byte, mode os.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = clean(p)
	m.files[p] = slices.Clone(data)
	m.modes[p] = mode
}

// GetFile returns the content stored at path.
func (m *MockFileSystem) GetFile(p string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[clean(p)]
	return data, ok
}

// FileMode returns the mode stored for path.
func (m *MockFileSystem) FileMode(p string) (os.FileMode, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mode, ok := m.modes[clean(p)]
	return mode, ok
}

// Deny makes Access fail for path while keeping it readable.
func (m *MockFileSystem) Deny(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denied[clean(p)] = true
}

func (m *MockFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.GetFile(p)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return slices.Clone(data), nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, p string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := clean(p)
	m.files[key] = slices.Clone(data)
	m.modes[key] = perm
	m.Writes = append(m.Writes, p)
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, p string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	key := clean(p)
	if data, ok := m.files[key]; ok {
		return &mockFileInfo{name: path.Base(key), size: int64(len(data)), mode: m.modes[key]}, nil
	}
	if m.isDirLocked(key) {
		return &mockFileInfo{name: path.Base(key), mode: fs.ModeDir | 0o755}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

func (m *MockFileSystem) ReadDir(ctx context.Context, p string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir := clean(p)
	prefix := dir + "/"
	switch dir {
	case ".":
		prefix = ""
	case "/":
		prefix = "/"
	}

	seen := make(map[string]bool)
	var entries []os.DirEntry
	for key := range m.files {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		name, _, nested := strings.Cut(rest, "/")
		if seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, &mockDirEntry{name: name, dir: nested})
	}
	if len(entries) == 0 && !m.isDirLocked(dir) {
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: fs.ErrNotExist}
	}

	slices.SortFunc(entries, func(a, b os.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (m *MockFileSystem) Access(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	key := clean(p)
	if _, ok := m.files[key]; !ok {
		return &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	if m.denied[key] {
		return &fs.PathError{Op: "open", Path: p, Err: fs.ErrPermission}
	}
	return nil
}

func (m *MockFileSystem) Glob(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pattern = clean(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var matches []string
	for key := range m.files {
		if ok, _ := doublestar.Match(pattern, key); ok {
			matches = append(matches, key)
		}
	}
	slices.Sort(matches)
	return matches, nil
}

// isDirLocked reports whether any stored file lives below dir.
// Callers must hold m.mu.
func (m *MockFileSystem) isDirLocked(dir string) bool {
	if dir == "." {
		return true
	}
	prefix := dir + "/"
	for key := range m.files {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

type mockFileInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (i *mockFileInfo) Name() string       { return i.name }
func (i *mockFileInfo) Size() int64        { return i.size }
func (i *mockFileInfo) Mode() os.FileMode  { return i.mode }
func (i *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i *mockFileInfo) IsDir() bool        { return i.mode.IsDir() }
func (i *mockFileInfo) Sys() any           { return nil }

type mockDirEntry struct {
	name string
	dir  bool
}

func (e *mockDirEntry) Name() string { return e.name }
func (e *mockDirEntry) IsDir() bool  { return e.dir }
func (e *mockDirEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}
	return 0
}
func (e *mockDirEntry) Info() (fs.FileInfo, error) {
	mode := PermDefault
	if e.dir {
		mode = fs.ModeDir | 0o755
	}
	return &mockFileInfo{name: e.name, mode: mode}, nil
}
