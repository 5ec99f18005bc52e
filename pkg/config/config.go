// Package config loads dropsort's application settings.
//
// Settings are layered: built-in defaults, then the user's dropsort.toml
// from the config directory, then DROPSORT_* environment variables.
// Later layers win.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dropsort/dropsort/pkg/errors"
)

// CollisionPolicy decides what happens when a moved file's name is
// already taken at the destination.
type CollisionPolicy string

const (
	// CollisionRename probes "name (N).ext" upward until a free name is found
	CollisionRename CollisionPolicy = "rename"

	// CollisionSkip leaves the source file in place
	CollisionSkip CollisionPolicy = "skip"

	// CollisionOverwrite replaces the existing destination file
	CollisionOverwrite CollisionPolicy = "overwrite"
)

// Settings holds the application configuration.
type Settings struct {
	Sort struct {
		CollisionPolicy string `koanf:"collision_policy"`
		IncludeHidden   bool   `koanf:"include_hidden"`
	} `koanf:"sort"`

	Watch struct {
		Dir           string `koanf:"dir"`
		SettleSeconds int    `koanf:"settle_seconds"`
	} `koanf:"watch"`

	History struct {
		Keep int `koanf:"keep"`
	} `koanf:"history"`

	Logging struct {
		Verbosity int `koanf:"verbosity"`
	} `koanf:"logging"`
}

// Collision returns the configured collision policy, falling back to
// rename for unknown values.
func (s *Settings) Collision() CollisionPolicy {
	switch CollisionPolicy(s.Sort.CollisionPolicy) {
	case CollisionSkip:
		return CollisionSkip
	case CollisionOverwrite:
		return CollisionOverwrite
	default:
		return CollisionRename
	}
}

// SettleDelay returns the watcher settle delay as a duration.
func (s *Settings) SettleDelay() time.Duration {
	if s.Watch.SettleSeconds < 0 {
		return 0
	}
	return time.Duration(s.Watch.SettleSeconds) * time.Second
}

// Load reads settings from defaults, the given config file (if it
// exists) and the environment.
func Load(configFile string) (*Settings, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file, when present
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad,
					"failed to load config from %s", configFile)
			}
		}
	}

	// 3. Environment: DROPSORT_SORT_COLLISION_POLICY=skip etc.
	if err := k.Load(env.Provider("DROPSORT_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "DROPSORT_"))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal settings")
	}

	return &settings, nil
}
