// Package paths provides centralized path handling for dropsort.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/dropsort/dropsort/pkg/types"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dropsort
	EnvConfigDir = "DROPSORT_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for dropsort
	EnvDataDir = "DROPSORT_DATA_DIR"

	// EnvStateDir overrides the XDG state directory for dropsort
	EnvStateDir = "DROPSORT_STATE_DIR"

	// EnvCacheDir overrides the XDG cache directory for dropsort
	EnvCacheDir = "DROPSORT_CACHE_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for dropsort-specific files
	AppDirName = "dropsort"

	// RulesFileName is the name of the persisted rule list
	RulesFileName = "rules.toml"

	// ConfigFileName is the name of the settings file
	ConfigFileName = "dropsort.toml"

	// HistoryDBFileName is the name of the move-history database
	HistoryDBFileName = "history.db"

	// LogFileName is the name of the log file
	LogFileName = "dropsort.log"
)

// defaultPaths implements types.Pather using XDG base directories
// with environment overrides.
type defaultPaths struct {
	configDir string
	dataDir   string
	stateDir  string
	cacheDir  string
}

// New creates a Pather resolving directories from the environment
// and the XDG base directory specification.
func New() types.Pather {
	return &defaultPaths{
		configDir: resolveDir(EnvConfigDir, xdg.ConfigHome),
		dataDir:   resolveDir(EnvDataDir, xdg.DataHome),
		stateDir:  resolveDir(EnvStateDir, xdg.StateHome),
		cacheDir:  resolveDir(EnvCacheDir, xdg.CacheHome),
	}
}

func resolveDir(envVar, xdgBase string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return dir
	}
	return filepath.Join(xdgBase, AppDirName)
}

func (p *defaultPaths) ConfigDir() string { return p.configDir }
func (p *defaultPaths) DataDir() string   { return p.dataDir }
func (p *defaultPaths) StateDir() string  { return p.stateDir }
func (p *defaultPaths) CacheDir() string  { return p.cacheDir }

func (p *defaultPaths) RulesPath() string {
	return filepath.Join(p.configDir, RulesFileName)
}

func (p *defaultPaths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

func (p *defaultPaths) HistoryDBPath() string {
	return filepath.Join(p.stateDir, HistoryDBFileName)
}

func (p *defaultPaths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}
