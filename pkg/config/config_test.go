package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, CollisionRename, settings.Collision())
	assert.False(t, settings.Sort.IncludeHidden)
	assert.Equal(t, 2*time.Second, settings.SettleDelay())
	assert.Equal(t, 500, settings.History.Keep)
	assert.Equal(t, 0, settings.Logging.Verbosity)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "dropsort.toml")
	content := `
[sort]
collision_policy = "skip"
include_hidden = true

[watch]
dir = "/home/user/Downloads"
settle_seconds = 5
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	settings, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, CollisionSkip, settings.Collision())
	assert.True(t, settings.Sort.IncludeHidden)
	assert.Equal(t, "/home/user/Downloads", settings.Watch.Dir)
	assert.Equal(t, 5*time.Second, settings.SettleDelay())
	// Untouched sections keep their defaults
	assert.Equal(t, 500, settings.History.Keep)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "dropsort.toml")
	require.NoError(t, os.WriteFile(configFile, []byte("[sort]\ncollision_policy = \"skip\"\n"), 0644))

	t.Setenv("DROPSORT_SORT_COLLISION_POLICY", "overwrite")

	settings, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, CollisionOverwrite, settings.Collision())
}

func TestLoadMissingFileIsFine(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, CollisionRename, settings.Collision())
}

func TestCollisionFallsBackToRename(t *testing.T) {
	var settings Settings
	settings.Sort.CollisionPolicy = "explode"
	assert.Equal(t, CollisionRename, settings.Collision())
}

func TestSettleDelayNeverNegative(t *testing.T) {
	var settings Settings
	settings.Watch.SettleSeconds = -3
	assert.Equal(t, time.Duration(0), settings.SettleDelay())
}
