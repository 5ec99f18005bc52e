package sorter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropsort/dropsort/pkg/config"
	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/filesystem"
	"github.com/dropsort/dropsort/pkg/rules"
	"github.com/dropsort/dropsort/pkg/types"
)

type env struct {
	store *rules.Store
	src   string
	dest  string
}

// newEnv builds a rule store with one rule ({txt} -> dest) plus a
// source directory to drop files into.
func newEnv(t *testing.T) env {
	t.Helper()
	root := t.TempDir()
	dest := filepath.Join(root, "dest")
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(dest, 0755))
	require.NoError(t, os.MkdirAll(src, 0755))

	store, err := rules.NewStore(filesystem.NewOS(), filepath.Join(root, "rules.toml"))
	require.NoError(t, err)
	_, err = store.Add([]string{"txt"}, dest)
	require.NoError(t, err)

	return env{store: store, src: src, dest: dest}
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSortFileMoves(t *testing.T) {
	e := newEnv(t)
	src := writeFile(t, filepath.Join(e.src, "notes.txt"), "hello")

	s := New(filesystem.NewOS(), e.store, Options{})
	result, err := s.SortFile(src)
	require.NoError(t, err)

	assert.Equal(t, types.StatusMoved, result.Status)
	assert.Equal(t, filepath.Join(e.dest, "notes.txt"), result.Destination)

	// The file is gone from the source and present at the destination
	_, statErr := os.Stat(src)
	assert.True(t, os.IsNotExist(statErr))
	data, readErr := os.ReadFile(result.Destination)
	require.NoError(t, readErr)
	assert.Equal(t, "hello", string(data))
}

func TestSortFileCaseInsensitiveExtension(t *testing.T) {
	e := newEnv(t)
	src := writeFile(t, filepath.Join(e.src, "REPORT.TXT"), "x")

	s := New(filesystem.NewOS(), e.store, Options{})
	result, err := s.SortFile(src)
	require.NoError(t, err)
	assert.Equal(t, types.StatusMoved, result.Status)
}

func TestSortFileNoMatchingRule(t *testing.T) {
	e := newEnv(t)
	src := writeFile(t, filepath.Join(e.src, "movie.mp4"), "x")

	s := New(filesystem.NewOS(), e.store, Options{})
	result, err := s.SortFile(src)

	assert.True(t, errors.IsErrorCode(err, errors.ErrNoMatchingRule))
	assert.Equal(t, types.StatusSkipped, result.Status)

	// The file stays where it was
	_, statErr := os.Stat(src)
	assert.NoError(t, statErr)
}

func TestSortFileDotfileHasNoExtension(t *testing.T) {
	e := newEnv(t)
	rcDest := filepath.Join(t.TempDir(), "rc")
	require.NoError(t, os.MkdirAll(rcDest, 0755))
	_, err := e.store.Add([]string{"bashrc"}, rcDest)
	require.NoError(t, err)
	src := writeFile(t, filepath.Join(e.src, ".bashrc"), "x")

	s := New(filesystem.NewOS(), e.store, Options{})
	result, sortErr := s.SortFile(src)

	// .bashrc is extensionless, not a file with a .bashrc extension.
	assert.True(t, errors.IsErrorCode(sortErr, errors.ErrNoMatchingRule))
	assert.Equal(t, types.StatusSkipped, result.Status)
	_, statErr := os.Stat(src)
	assert.NoError(t, statErr)
}

func TestSortFileHiddenWithRealExtension(t *testing.T) {
	e := newEnv(t)
	src := writeFile(t, filepath.Join(e.src, ".config.txt"), "x")

	s := New(filesystem.NewOS(), e.store, Options{})
	result, err := s.SortFile(src)
	require.NoError(t, err)
	assert.Equal(t, types.StatusMoved, result.Status)
	assert.Equal(t, filepath.Join(e.dest, ".config.txt"), result.Destination)
}

func TestSortFileMissingSource(t *testing.T) {
	e := newEnv(t)

	s := New(filesystem.NewOS(), e.store, Options{})
	result, err := s.SortFile(filepath.Join(e.src, "gone.txt"))

	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	assert.Equal(t, types.StatusFailed, result.Status)
}

func TestSortFileCreatesDestination(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "not", "yet", "there")
	src := writeFile(t, filepath.Join(root, "a.txt"), "x")

	store, err := rules.NewStore(filesystem.NewOS(), filepath.Join(root, "rules.toml"))
	require.NoError(t, err)
	_, err = store.Add([]string{"txt"}, dest)
	require.NoError(t, err)

	s := New(filesystem.NewOS(), store, Options{})
	result, err := s.SortFile(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "a.txt"), result.Destination)
}

func TestCollisionRename(t *testing.T) {
	e := newEnv(t)
	writeFile(t, filepath.Join(e.dest, "notes.txt"), "old")
	writeFile(t, filepath.Join(e.dest, "notes (1).txt"), "older")
	src := writeFile(t, filepath.Join(e.src, "notes.txt"), "new")

	s := New(filesystem.NewOS(), e.store, Options{Collision: config.CollisionRename})
	result, err := s.SortFile(src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(e.dest, "notes (2).txt"), result.Destination)
	data, _ := os.ReadFile(result.Destination)
	assert.Equal(t, "new", string(data))
	// Existing files are untouched
	data, _ = os.ReadFile(filepath.Join(e.dest, "notes.txt"))
	assert.Equal(t, "old", string(data))
}

func TestCollisionSkip(t *testing.T) {
	e := newEnv(t)
	writeFile(t, filepath.Join(e.dest, "notes.txt"), "old")
	src := writeFile(t, filepath.Join(e.src, "notes.txt"), "new")

	s := New(filesystem.NewOS(), e.store, Options{Collision: config.CollisionSkip})
	result, err := s.SortFile(src)
	require.NoError(t, err)

	assert.Equal(t, types.StatusSkipped, result.Status)
	_, statErr := os.Stat(src)
	assert.NoError(t, statErr, "source must stay in place")
}

func TestCollisionOverwrite(t *testing.T) {
	e := newEnv(t)
	writeFile(t, filepath.Join(e.dest, "notes.txt"), "old")
	src := writeFile(t, filepath.Join(e.src, "notes.txt"), "new")

	s := New(filesystem.NewOS(), e.store, Options{Collision: config.CollisionOverwrite})
	result, err := s.SortFile(src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(e.dest, "notes.txt"), result.Destination)
	data, _ := os.ReadFile(result.Destination)
	assert.Equal(t, "new", string(data))
}

func TestSortFilesContinuesPastFailures(t *testing.T) {
	e := newEnv(t)
	good := writeFile(t, filepath.Join(e.src, "a.txt"), "x")
	unmatched := writeFile(t, filepath.Join(e.src, "b.mp4"), "x")
	missing := filepath.Join(e.src, "gone.txt")

	s := New(filesystem.NewOS(), e.store, Options{})
	report := s.SortFiles([]string{good, unmatched, missing})

	assert.Equal(t, 1, report.Moved())
	assert.Equal(t, 1, report.Skipped())
	assert.Equal(t, 1, report.Failed())
	assert.NotEmpty(t, report.BatchID)
	assert.Len(t, report.Results, 3)
}

func TestSortDirectory(t *testing.T) {
	e := newEnv(t)
	writeFile(t, filepath.Join(e.src, "a.txt"), "x")
	writeFile(t, filepath.Join(e.src, "b.txt"), "x")
	writeFile(t, filepath.Join(e.src, "c.mp4"), "x")
	writeFile(t, filepath.Join(e.src, ".hidden.txt"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(e.src, "subdir"), 0755))

	s := New(filesystem.NewOS(), e.store, Options{})
	report, err := s.SortDirectory(e.src)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Moved())
	assert.Equal(t, 1, report.Skipped())
	assert.Equal(t, 0, report.Failed())

	// Subdirectory and dotfile were not considered at all
	assert.Len(t, report.Results, 3)
	_, statErr := os.Stat(filepath.Join(e.src, "subdir"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(e.src, ".hidden.txt"))
	assert.NoError(t, statErr)
}

func TestSortDirectoryIncludeHidden(t *testing.T) {
	e := newEnv(t)
	writeFile(t, filepath.Join(e.src, ".hidden.txt"), "x")

	s := New(filesystem.NewOS(), e.store, Options{IncludeHidden: true})
	report, err := s.SortDirectory(e.src)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Moved())
}

func TestSortDirectoryUnreadable(t *testing.T) {
	e := newEnv(t)

	s := New(filesystem.NewOS(), e.store, Options{})
	_, err := s.SortDirectory(filepath.Join(e.src, "no-such-dir"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestDryRunMovesNothing(t *testing.T) {
	e := newEnv(t)
	src := writeFile(t, filepath.Join(e.src, "a.txt"), "x")

	s := New(filesystem.NewOS(), e.store, Options{DryRun: true})
	result, err := s.SortFile(src)
	require.NoError(t, err)

	assert.Equal(t, types.StatusMoved, result.Status)
	assert.Equal(t, filepath.Join(e.dest, "a.txt"), result.Destination)

	// Nothing actually happened
	_, statErr := os.Stat(src)
	assert.NoError(t, statErr)
	_, statErr = os.Stat(result.Destination)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRemovedRuleFallsThrough(t *testing.T) {
	e := newEnv(t)
	src := writeFile(t, filepath.Join(e.src, "a.txt"), "x")

	rule := e.store.List()[0]
	require.NoError(t, e.store.Remove(rule.ID))

	s := New(filesystem.NewOS(), e.store, Options{})
	_, err := s.SortFile(src)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoMatchingRule))
}

func TestEditedDestinationAffectsOnlyNewMoves(t *testing.T) {
	e := newEnv(t)
	first := writeFile(t, filepath.Join(e.src, "a.txt"), "x")

	s := New(filesystem.NewOS(), e.store, Options{})
	firstResult, err := s.SortFile(first)
	require.NoError(t, err)

	// Point the rule somewhere else
	newDest := filepath.Join(t.TempDir(), "elsewhere")
	rule := e.store.List()[0]
	_, err = e.store.Edit(rule.ID, nil, newDest)
	require.NoError(t, err)

	second := writeFile(t, filepath.Join(e.src, "b.txt"), "x")
	secondResult, err := s.SortFile(second)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(newDest, "b.txt"), secondResult.Destination)
	// The previously moved file did not migrate
	_, statErr := os.Stat(firstResult.Destination)
	assert.NoError(t, statErr)
}

// recorderFunc adapts a func to the Recorder interface.
type recorderFunc func(types.SortReport) error

func (f recorderFunc) Record(r types.SortReport) error { return f(r) }

func TestBatchesAreJournaled(t *testing.T) {
	e := newEnv(t)
	src := writeFile(t, filepath.Join(e.src, "a.txt"), "x")

	var recorded []types.SortReport
	rec := recorderFunc(func(r types.SortReport) error {
		recorded = append(recorded, r)
		return nil
	})

	s := New(filesystem.NewOS(), e.store, Options{Recorder: rec})
	s.SortFiles([]string{src})

	require.Len(t, recorded, 1)
	assert.Equal(t, 1, recorded[0].Moved())

	// Batches with nothing moved are not journaled
	s.SortFiles([]string{filepath.Join(e.src, "gone.txt")})
	assert.Len(t, recorded, 1)
}
