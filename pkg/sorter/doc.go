// Package sorter moves files into their rule-configured destination
// folders. It is the single place files are matched against the rule
// store and the single place moves happen; the GUI drop zone, the CLI
// sort command and the watcher all funnel into it.
package sorter
