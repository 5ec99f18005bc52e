// Package testutil provides an in-memory types.FS for tests that need
// to provoke filesystem failures the real disk will not produce.
package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. Failures can be
// injected per operation and path with Fail.
type MemoryFS struct {
	mu       sync.RWMutex
	contents map[string][]byte
	modes    map[string]fs.FileMode
	dirs     map[string]bool
	failures map[string]error
}

func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		contents: make(map[string][]byte),
		modes:    make(map[string]fs.FileMode),
		dirs:     map[string]bool{"/": true},
		failures: make(map[string]error),
	}
}

// Fail makes the named operation (stat, readfile, writefile, mkdirall,
// readdir, rename, remove, removeall) fail with err for path. Rename
// failures key on the old path.
func (m *MemoryFS) Fail(op, path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op+" "+filepath.Clean(path)] = err
}

func (m *MemoryFS) injected(op, path string) error {
	return m.failures[op+" "+filepath.Clean(path)]
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.injected("stat", name); err != nil {
		return nil, err
	}
	return m.stat(name)
}

// Lstat behaves like Stat, the in-memory tree has no symlinks.
func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	return m.Stat(name)
}

func (m *MemoryFS) stat(name string) (fs.FileInfo, error) {
	name = filepath.Clean(name)
	if m.dirs[name] {
		return fileInfo{name: filepath.Base(name), mode: 0755 | fs.ModeDir, dir: true}, nil
	}
	data, ok := m.contents[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fileInfo{name: filepath.Base(name), mode: m.modes[name], size: int64(len(data))}, nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.injected("readfile", name); err != nil {
		return nil, err
	}
	name = filepath.Clean(name)
	data, ok := m.contents[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("writefile", name); err != nil {
		return err
	}
	name = filepath.Clean(name)
	dir := filepath.Dir(name)
	if !m.dirs[dir] {
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	m.contents[name] = append([]byte(nil), data...)
	m.modes[name] = perm
	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("mkdirall", path); err != nil {
		return err
	}
	path = filepath.Clean(path)
	for p := path; p != "/" && p != "."; p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	return nil
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.injected("readdir", name); err != nil {
		return nil, err
	}
	name = filepath.Clean(name)
	if !m.dirs[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	var entries []fs.DirEntry
	for path := range m.contents {
		if filepath.Dir(path) == name {
			info, _ := m.stat(path)
			entries = append(entries, dirEntry{info: info.(fileInfo)})
		}
	}
	for path := range m.dirs {
		if path != name && filepath.Dir(path) == name {
			entries = append(entries, dirEntry{info: fileInfo{
				name: filepath.Base(path), mode: 0755 | fs.ModeDir, dir: true,
			}})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("rename", oldpath); err != nil {
		return err
	}
	oldpath, newpath = filepath.Clean(oldpath), filepath.Clean(newpath)
	data, ok := m.contents[oldpath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	if !m.dirs[filepath.Dir(newpath)] {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrNotExist}
	}
	m.contents[newpath] = data
	m.modes[newpath] = m.modes[oldpath]
	delete(m.contents, oldpath)
	delete(m.modes, oldpath)
	return nil
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("remove", name); err != nil {
		return err
	}
	name = filepath.Clean(name)
	if _, ok := m.contents[name]; ok {
		delete(m.contents, name)
		delete(m.modes, name)
		return nil
	}
	if m.dirs[name] {
		delete(m.dirs, name)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
}

func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("removeall", path); err != nil {
		return err
	}
	path = filepath.Clean(path)
	prefix := path + "/"
	for p := range m.contents {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(m.contents, p)
			delete(m.modes, p)
		}
	}
	for p := range m.dirs {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(m.dirs, p)
		}
	}
	return nil
}

type fileInfo struct {
	name string
	mode fs.FileMode
	size int64
	dir  bool
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return fi.dir }
func (fi fileInfo) Sys() interface{}   { return nil }

type dirEntry struct {
	info fileInfo
}

func (de dirEntry) Name() string               { return de.info.name }
func (de dirEntry) IsDir() bool                { return de.info.dir }
func (de dirEntry) Type() fs.FileMode          { return de.info.mode.Type() }
func (de dirEntry) Info() (fs.FileInfo, error) { return de.info, nil }
