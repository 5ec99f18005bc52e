// Package gui implements the desktop window: a drop zone for files,
// the rule list with inline editing, and a small toolbar. It drives
// the same rule store and sorter the CLI uses.
package gui
