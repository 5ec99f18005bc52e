// Package manual holds the embedded user manual, shared by the manual
// command and the GUI help window.
package manual

import _ "embed"

//go:embed MANUAL.md
var content string

// Content returns the manual as markdown.
func Content() string {
	return content
}
