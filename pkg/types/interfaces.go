package types

import (
	"io/fs"
)

// FS is the filesystem interface required for dropsort operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Move operations
	Rename(oldpath, newpath string) error

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat distinguishes symlinks from their targets; test
	// implementations may fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Pather provides the directories dropsort reads and writes.
type Pather interface {
	// ConfigDir returns the XDG config directory for dropsort
	ConfigDir() string

	// DataDir returns the XDG data directory for dropsort
	DataDir() string

	// StateDir returns the XDG state directory for dropsort
	StateDir() string

	// CacheDir returns the XDG cache directory for dropsort
	CacheDir() string

	// RulesPath returns the path of the persisted rule list
	RulesPath() string

	// ConfigFilePath returns the path of the settings file
	ConfigFilePath() string

	// HistoryDBPath returns the path of the move-history database
	HistoryDBPath() string

	// LogFilePath returns the path of the log file
	LogFilePath() string
}
