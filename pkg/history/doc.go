// Package history journals completed sort batches in a SQLite database
// so the most recent batch can be undone and past activity inspected.
package history
