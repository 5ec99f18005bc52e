package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropsort/dropsort/pkg/errors"
)

// setupTestHome points every dropsort directory at a fresh temp dir so
// commands never touch the real config.
func setupTestHome(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("DROPSORT_CONFIG_DIR", filepath.Join(base, "config"))
	t.Setenv("DROPSORT_DATA_DIR", filepath.Join(base, "data"))
	t.Setenv("DROPSORT_STATE_DIR", filepath.Join(base, "state"))
	t.Setenv("DROPSORT_CACHE_DIR", filepath.Join(base, "cache"))
	return base
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func resetFlags() {
	verbosity = 0
	configFile = ""
	sortDryRun = false
	sortDir = ""
	addExts = ""
	addDest = ""
	editExts = ""
	editDest = ""
	undoList = false
}

func TestRulesAddListRemove(t *testing.T) {
	base := setupTestHome(t)
	dest := filepath.Join(base, "docs")

	err := runCLI(t, "rules", "add", "--ext", "pdf,epub", "--dest", dest)
	require.NoError(t, err)

	// The rule list was persisted to the overridden config dir.
	_, err = os.Stat(filepath.Join(base, "config", "rules.toml"))
	assert.NoError(t, err)

	err = runCLI(t, "rules", "list")
	assert.NoError(t, err)

	// A second rule for the same folder is rejected.
	err = runCLI(t, "rules", "add", "--ext", "txt", "--dest", dest)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleExists))
}

func TestSortMovesFile(t *testing.T) {
	base := setupTestHome(t)
	dest := filepath.Join(base, "docs")
	require.NoError(t, runCLI(t, "rules", "add", "--ext", "pdf", "--dest", dest))

	src := filepath.Join(base, "report.pdf")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0644))

	require.NoError(t, runCLI(t, "sort", src))

	_, err := os.Stat(filepath.Join(dest, "report.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestSortDryRunLeavesFiles(t *testing.T) {
	base := setupTestHome(t)
	dest := filepath.Join(base, "docs")
	require.NoError(t, runCLI(t, "rules", "add", "--ext", "pdf", "--dest", dest))

	src := filepath.Join(base, "report.pdf")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0644))

	require.NoError(t, runCLI(t, "sort", "--dry-run", src))

	_, err := os.Stat(src)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dest, "report.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestSortDirectoryArgument(t *testing.T) {
	base := setupTestHome(t)
	dest := filepath.Join(base, "docs")
	require.NoError(t, runCLI(t, "rules", "add", "--ext", "pdf", "--dest", dest))

	inbox := filepath.Join(base, "inbox")
	require.NoError(t, os.MkdirAll(inbox, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "a.pdf"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "b.mp4"), []byte("x"), 0644))

	require.NoError(t, runCLI(t, "sort", inbox))

	_, err := os.Stat(filepath.Join(dest, "a.pdf"))
	assert.NoError(t, err)
	// No rule for .mp4, stays put
	_, err = os.Stat(filepath.Join(inbox, "b.mp4"))
	assert.NoError(t, err)
}

func TestUndoRestoresLastBatch(t *testing.T) {
	base := setupTestHome(t)
	dest := filepath.Join(base, "docs")
	require.NoError(t, runCLI(t, "rules", "add", "--ext", "pdf", "--dest", dest))

	src := filepath.Join(base, "report.pdf")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0644))
	require.NoError(t, runCLI(t, "sort", src))

	require.NoError(t, runCLI(t, "undo"))

	_, err := os.Stat(src)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dest, "report.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestSortRequiresInput(t *testing.T) {
	setupTestHome(t)

	err := runCLI(t, "sort")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRulesExportImportRoundTrip(t *testing.T) {
	base := setupTestHome(t)
	dest := filepath.Join(base, "docs")
	require.NoError(t, runCLI(t, "rules", "add", "--ext", "pdf", "--dest", dest))

	e, err := newEnv()
	require.NoError(t, err)
	data, err := e.rules.ExportYAML()
	require.NoError(t, err)

	importFile := filepath.Join(base, "rules.yaml")
	require.NoError(t, os.WriteFile(importFile, data, 0644))

	require.NoError(t, runCLI(t, "rules", "import", importFile))

	e, err = newEnv()
	require.NoError(t, err)
	assert.Equal(t, 1, e.rules.Len())
}

func TestConfigVerbositySetsLogLevel(t *testing.T) {
	base := setupTestHome(t)
	cfgDir := filepath.Join(base, "config")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "dropsort.toml"),
		[]byte("[logging]\nverbosity = 2\n"), 0644))

	require.NoError(t, runCLI(t, "rules", "list"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	// The -v flag overrides the configured baseline.
	require.NoError(t, runCLI(t, "-v", "rules", "list"))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestConfigInit(t *testing.T) {
	base := setupTestHome(t)

	require.NoError(t, runCLI(t, "config", "init"))

	data, err := os.ReadFile(filepath.Join(base, "config", "dropsort.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "collision_policy")

	// Refuses to clobber an existing file.
	err = runCLI(t, "config", "init")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/Downloads")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Downloads"), got)

	got, err = expandPath("/tmp/x")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", got)
}

func TestRenderManualFallsBackWhenPiped(t *testing.T) {
	// Test processes run without a tty, so the raw markdown comes back.
	content := "# heading\n\nbody\n"
	assert.Equal(t, content, renderManual(content))
}
