package sorter

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dropsort/dropsort/pkg/config"
	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/logging"
	"github.com/dropsort/dropsort/pkg/rules"
	"github.com/dropsort/dropsort/pkg/types"
)

// Recorder receives completed sort batches. The history journal
// implements it; a nil Recorder disables journaling.
type Recorder interface {
	Record(report types.SortReport) error
}

// Options configures a Sorter.
type Options struct {
	// Collision is the policy for occupied destination names
	Collision config.CollisionPolicy

	// IncludeHidden makes directory sorts consider dotfiles
	IncludeHidden bool

	// DryRun computes destinations without moving anything
	DryRun bool

	// Recorder journals completed batches, may be nil
	Recorder Recorder
}

// Sorter matches files against the rule store and moves them.
type Sorter struct {
	fs     types.FS
	store  *rules.Store
	opts   Options
	logger zerolog.Logger
}

// New creates a Sorter over the given filesystem and rule store.
func New(fs types.FS, store *rules.Store, opts Options) *Sorter {
	if opts.Collision == "" {
		opts.Collision = config.CollisionRename
	}
	return &Sorter{
		fs:     fs,
		store:  store,
		opts:   opts,
		logger: logging.GetLogger("sorter"),
	}
}

// SortFile sorts a single file. The returned error is non-nil when the
// file was not moved: ErrNoMatchingRule when no rule claims its
// extension, a filesystem code when the move failed.
func (s *Sorter) SortFile(path string) (types.MoveResult, error) {
	result := s.sortOne(path)
	return result, result.Err
}

// SortFiles sorts the given files sequentially. One file's failure does
// not stop the rest. The completed batch is journaled when any file
// moved.
func (s *Sorter) SortFiles(paths []string) types.SortReport {
	defer logging.LogDuration(time.Now(), "sort files")
	report := types.SortReport{
		BatchID:   uuid.NewString(),
		StartedAt: time.Now(),
	}

	for _, path := range paths {
		report.Results = append(report.Results, s.sortOne(path))
	}

	s.finish(&report)
	return report
}

// SortDirectory sorts the regular files directly inside dir. It does
// not recurse; subdirectories are left alone. Dotfiles are skipped
// unless IncludeHidden is set.
func (s *Sorter) SortDirectory(dir string) (types.SortReport, error) {
	defer logging.LogDuration(time.Now(), "sort directory")
	report := types.SortReport{
		BatchID:   uuid.NewString(),
		StartedAt: time.Now(),
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return report, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !s.opts.IncludeHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		report.Results = append(report.Results, s.sortOne(filepath.Join(dir, entry.Name())))
	}

	s.finish(&report)
	return report, nil
}

// sortOne matches and moves a single file, converting every failure
// into a MoveResult so batches can continue past it.
func (s *Sorter) sortOne(path string) types.MoveResult {
	result := types.MoveResult{Source: path}

	info, err := s.fs.Lstat(path)
	if err != nil {
		result.Status = types.StatusFailed
		result.Err = errors.Wrapf(err, errors.ErrFileNotFound, "cannot stat %s", path)
		return result
	}
	if info.IsDir() {
		result.Status = types.StatusFailed
		result.Err = errors.Newf(errors.ErrInvalidInput, "%s is a directory", path)
		return result
	}

	// A dotfile like .bashrc has no extension even though filepath.Ext
	// reports the whole name as one.
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	ext = rules.NormalizeExtension(ext)
	rule, ok := s.store.FindByExtension(ext)
	if !ok {
		result.Status = types.StatusSkipped
		result.Err = errors.Newf(errors.ErrNoMatchingRule, "no rule for %s", path).
			WithDetail("extension", ext)
		return result
	}
	result.RuleID = rule.ID

	target, skipped, err := s.move(path, rule.Destination)
	if err != nil {
		result.Status = types.StatusFailed
		result.Err = err
		return result
	}
	if skipped {
		// collision-skip policy left the file in place
		result.Status = types.StatusSkipped
		return result
	}

	result.Status = types.StatusMoved
	result.Destination = target

	s.logger.Info().
		Str("source", path).
		Str("destination", target).
		Str("rule", rule.ID).
		Bool("dryRun", s.opts.DryRun).
		Msg("File sorted")

	return result
}

// finish journals the batch and logs its summary.
func (s *Sorter) finish(report *types.SortReport) {
	s.logger.Info().
		Str("batch", report.BatchID).
		Int("moved", report.Moved()).
		Int("skipped", report.Skipped()).
		Int("failed", report.Failed()).
		Msg("Sort batch complete")

	if s.opts.Recorder == nil || s.opts.DryRun || report.Moved() == 0 {
		return
	}
	if err := s.opts.Recorder.Record(*report); err != nil {
		s.logger.Warn().Err(err).Str("batch", report.BatchID).Msg("Failed to journal batch")
	}
}
