package history

import (
	"path/filepath"

	"github.com/dropsort/dropsort/pkg/errors"
)

// UndoReport summarizes an undone batch.
type UndoReport struct {
	// Restored counts files moved back to their original paths
	Restored int

	// Missed counts journaled moves that could not be reverted: the
	// file is no longer at its destination or its old path is taken
	Missed int
}

// UndoBatch moves the files of a batch back to their recorded source
// paths and removes the batch from the journal. Moves whose
// destination file is gone, or whose source path is occupied again,
// are counted and left alone rather than failing the undo.
func (s *Store) UndoBatch(batchID string) (UndoReport, error) {
	moves, err := s.Moves(batchID)
	if err != nil {
		return UndoReport{}, err
	}
	if len(moves) == 0 {
		return UndoReport{}, errors.Newf(errors.ErrHistoryAccess, "no moves recorded for batch %s", batchID)
	}

	var report UndoReport
	// Reverse order, so collision-renamed files unwind cleanly
	for i := len(moves) - 1; i >= 0; i-- {
		m := moves[i]

		if _, err := s.fs.Stat(m.Destination); err != nil {
			report.Missed++
			continue
		}
		if _, err := s.fs.Stat(m.Source); err == nil {
			report.Missed++
			continue
		}

		if err := s.fs.MkdirAll(filepath.Dir(m.Source), 0755); err != nil {
			report.Missed++
			continue
		}
		if err := s.fs.Rename(m.Destination, m.Source); err != nil {
			s.logger.Warn().Err(err).Str("file", m.Destination).Msg("Failed to restore file")
			report.Missed++
			continue
		}
		report.Restored++
	}

	if _, err := s.db.Exec("DELETE FROM batches WHERE id = ?", batchID); err != nil {
		return report, errors.Wrap(err, errors.ErrHistoryAccess, "failed to delete batch")
	}

	s.logger.Info().
		Str("batch", batchID).
		Int("restored", report.Restored).
		Int("missed", report.Missed).
		Msg("Batch undone")

	return report, nil
}

// UndoLast undoes the most recent batch. The returned batch id is
// empty when the journal was empty.
func (s *Store) UndoLast() (string, UndoReport, error) {
	last, ok, err := s.LastBatch()
	if err != nil {
		return "", UndoReport{}, err
	}
	if !ok {
		return "", UndoReport{}, nil
	}
	report, err := s.UndoBatch(last.ID)
	return last.ID, report, err
}
