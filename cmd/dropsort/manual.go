package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dropsort/dropsort/pkg/manual"
)

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Show the user manual",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(renderManual(manual.Content()))
		return nil
	},
}

// renderManual pretty-prints the manual on terminals and falls back
// to the raw markdown when piped or when glamour fails.
func renderManual(content string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return content
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
