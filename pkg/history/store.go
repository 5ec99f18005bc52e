package history

import (
	"database/sql"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/logging"
	"github.com/dropsort/dropsort/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	id         TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS moves (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id    TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
	source      TEXT NOT NULL,
	destination TEXT NOT NULL,
	rule_id     TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_moves_batch ON moves(batch_id);
`

// Batch summarizes one journaled sort batch.
type Batch struct {
	ID        string
	StartedAt time.Time
	MoveCount int
}

// Move is one journaled file move.
type Move struct {
	Source      string
	Destination string
	RuleID      string
}

// Store is the SQLite-backed move journal.
type Store struct {
	db     *sql.DB
	fs     types.FS
	path   string
	logger zerolog.Logger
}

// NewStore opens (creating if needed) the journal database at path.
// The fs is used to move files back during undo.
func NewStore(fs types.FS, path string) (*Store, error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create %s", filepath.Dir(path))
	}

	// WAL keeps the GUI responsive while the watcher writes. Pragmas go
	// in the DSN so every pooled connection gets them, foreign_keys
	// included.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryAccess, "failed to open history database")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.ErrHistoryAccess, "failed to initialize schema")
	}

	return &Store{
		db:     db,
		fs:     fs,
		path:   path,
		logger: logging.GetLogger("history"),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record journals the moved files of a batch. Skipped and failed
// entries are not recorded; there is nothing to undo for them.
func (s *Store) Record(report types.SortReport) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, errors.ErrHistoryAccess, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		"INSERT INTO batches (id, started_at) VALUES (?, ?)",
		report.BatchID, report.StartedAt.Unix(),
	); err != nil {
		return errors.Wrap(err, errors.ErrHistoryAccess, "failed to insert batch")
	}

	for _, res := range report.Results {
		if res.Status != types.StatusMoved {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO moves (batch_id, source, destination, rule_id) VALUES (?, ?, ?, ?)",
			report.BatchID, res.Source, res.Destination, res.RuleID,
		); err != nil {
			return errors.Wrap(err, errors.ErrHistoryAccess, "failed to insert move")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrHistoryAccess, "failed to commit batch")
	}

	s.logger.Debug().Str("batch", report.BatchID).Int("moves", report.Moved()).Msg("Batch journaled")
	return nil
}

// RecentBatches returns up to n batches, most recent first.
func (s *Store) RecentBatches(n int) ([]Batch, error) {
	rows, err := s.db.Query(`
		SELECT b.id, b.started_at, COUNT(m.id)
		FROM batches b LEFT JOIN moves m ON m.batch_id = b.id
		GROUP BY b.id
		ORDER BY b.started_at DESC, b.id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryAccess, "failed to query batches")
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		var startedAt int64
		if err := rows.Scan(&b.ID, &startedAt, &b.MoveCount); err != nil {
			return nil, errors.Wrap(err, errors.ErrHistoryAccess, "failed to scan batch")
		}
		b.StartedAt = time.Unix(startedAt, 0)
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// LastBatch returns the most recent batch, or ok=false when the
// journal is empty.
func (s *Store) LastBatch() (Batch, bool, error) {
	batches, err := s.RecentBatches(1)
	if err != nil || len(batches) == 0 {
		return Batch{}, false, err
	}
	return batches[0], true, nil
}

// Moves returns the journaled moves of a batch in recorded order.
func (s *Store) Moves(batchID string) ([]Move, error) {
	rows, err := s.db.Query(
		"SELECT source, destination, rule_id FROM moves WHERE batch_id = ? ORDER BY id",
		batchID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryAccess, "failed to query moves")
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		var m Move
		if err := rows.Scan(&m.Source, &m.Destination, &m.RuleID); err != nil {
			return nil, errors.Wrap(err, errors.ErrHistoryAccess, "failed to scan move")
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Prune deletes all but the most recent keep batches.
func (s *Store) Prune(keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.db.Exec(`
		DELETE FROM batches WHERE id NOT IN (
			SELECT id FROM batches ORDER BY started_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return errors.Wrap(err, errors.ErrHistoryAccess, "failed to prune history")
	}
	return nil
}
