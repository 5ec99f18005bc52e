package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dropsort/dropsort/pkg/gui"
	"github.com/dropsort/dropsort/pkg/sorter"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the drag-and-drop window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGUI()
	},
}

func runGUI() error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	// The window runs without undo when the journal cannot be opened.
	hist, err := e.openHistory()
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable, undo disabled")
		hist = nil
	}

	var recorder sorter.Recorder
	if hist != nil {
		recorder = hist
	}
	srt := e.newSorter(false, recorder)

	gui.NewApp(e.fs, e.rules, srt, hist).Run()
	return nil
}
