// Package watcher auto-sorts a directory: files that appear in it are
// run through the sorter once they have settled.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/logging"
	"github.com/dropsort/dropsort/pkg/sorter"
)

// Watcher sorts files created in a watched directory. Subdirectories
// are not watched.
type Watcher struct {
	dir    string
	sorter *sorter.Sorter
	settle time.Duration
	hidden bool
	logger zerolog.Logger

	// OnReport, when set, receives the report of every sorted file.
	// The GUI uses it to update the status bar.
	OnReport func(source string, err error)
}

// New creates a watcher over dir. Files are sorted settle after their
// create event, so half-written files are left alone.
func New(dir string, s *sorter.Sorter, settle time.Duration, includeHidden bool) *Watcher {
	return &Watcher{
		dir:    dir,
		sorter: s,
		settle: settle,
		hidden: includeHidden,
		logger: logging.GetLogger("watcher"),
	}
}

// Watch blocks sorting incoming files until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrWatchFailed, "failed to create watcher")
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.dir); err != nil {
		return errors.Wrapf(err, errors.ErrWatchFailed, "failed to watch %s", w.dir)
	}

	w.logger.Info().
		Str("dir", w.dir).
		Dur("settle", w.settle).
		Msg("Watching for files")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str("dir", w.dir).Msg("Watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.hidden && strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			go w.settleAndSort(ctx, event.Name)

		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(watchErr).Msg("Watcher error")
		}
	}
}

// settleAndSort waits the settle delay, then sorts the file. Files
// that vanished or grew into directories in the meantime are ignored.
func (w *Watcher) settleAndSort(ctx context.Context, path string) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(w.settle):
	}

	// One-file batch, so the move lands in the undo journal.
	report := w.sorter.SortFiles([]string{path})
	err := report.Results[0].Err
	switch {
	case err == nil:
	case errors.IsErrorCode(err, errors.ErrNoMatchingRule):
		w.logger.Debug().Str("file", path).Msg("No rule for watched file")
	case errors.IsErrorCode(err, errors.ErrFileNotFound),
		errors.IsErrorCode(err, errors.ErrInvalidInput):
		// gone again, or a directory; nothing to do
		return
	default:
		w.logger.Warn().Err(err).Str("file", path).Msg("Failed to sort watched file")
	}

	if w.OnReport != nil {
		w.OnReport(path, err)
	}
}
