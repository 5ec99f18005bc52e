package types

import "time"

// SortStatus describes the outcome of sorting a single file.
type SortStatus string

const (
	// StatusMoved means the file was moved to a rule's destination
	StatusMoved SortStatus = "moved"

	// StatusSkipped means no rule claimed the file's extension and the
	// file was left in place
	StatusSkipped SortStatus = "skipped"

	// StatusFailed means a rule matched but the move did not complete
	StatusFailed SortStatus = "failed"
)

// MoveResult records the outcome for one file in a sort batch.
type MoveResult struct {
	// Source is the original path of the file
	Source string

	// Destination is the final path after the move, empty unless moved
	Destination string

	// RuleID identifies the rule that claimed the file, empty if none
	RuleID string

	// Status is the outcome category
	Status SortStatus

	// Err holds the failure when Status is StatusFailed
	Err error
}

// SortReport summarizes a sort batch. One report is produced per drop,
// per directory sort, or per CLI invocation.
type SortReport struct {
	// BatchID identifies the batch in the history journal
	BatchID string

	// StartedAt is when the batch began
	StartedAt time.Time

	// Results holds the per-file outcomes in processing order
	Results []MoveResult
}

// Moved returns the number of files moved in the batch.
func (r SortReport) Moved() int { return r.count(StatusMoved) }

// Skipped returns the number of files left in place.
func (r SortReport) Skipped() int { return r.count(StatusSkipped) }

// Failed returns the number of files whose move failed.
func (r SortReport) Failed() int { return r.count(StatusFailed) }

func (r SortReport) count(status SortStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}
