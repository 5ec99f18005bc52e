package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/sorter"
	"github.com/dropsort/dropsort/pkg/style"
	"github.com/dropsort/dropsort/pkg/types"
)

var (
	sortDryRun bool
	sortDir    string

	sortCmd = &cobra.Command{
		Use:   "sort [paths...]",
		Short: "Sort files into their destination folders",
		Long: `Sort the given files into the folders your rules point at. A directory
argument (or --dir) sorts its immediate files without recursing. Files
without a matching rule are skipped. Every run that moves something is
journaled for undo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && sortDir == "" {
				return errors.New(errors.ErrInvalidInput, "nothing to sort: pass paths or --dir")
			}

			e, err := newEnv()
			if err != nil {
				return err
			}

			var recorder sorter.Recorder
			if !sortDryRun {
				hist, err := e.openHistory()
				if err != nil {
					return err
				}
				defer hist.Close()
				recorder = hist
			}
			srt := e.newSorter(sortDryRun, recorder)

			files, dirs, err := partitionArgs(args)
			if err != nil {
				return err
			}
			if sortDir != "" {
				dirs = append(dirs, sortDir)
			}

			var combined types.SortReport
			if len(files) > 0 {
				report := srt.SortFiles(files)
				combined.Results = append(combined.Results, report.Results...)
			}
			for _, dir := range dirs {
				report, err := srt.SortDirectory(dir)
				if err != nil {
					return err
				}
				combined.Results = append(combined.Results, report.Results...)
			}

			fmt.Print(style.RenderReport(combined, sortDryRun))
			if combined.Failed() > 0 {
				return errors.New(errors.ErrFileMove, "some files could not be sorted")
			}
			return nil
		},
	}
)

// partitionArgs splits the arguments into files and directories.
func partitionArgs(args []string) (files, dirs []string, err error) {
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrFileNotFound, "cannot stat %s", arg)
		}
		if info.IsDir() {
			dirs = append(dirs, arg)
		} else {
			files = append(files, arg)
		}
	}
	return files, dirs, nil
}

func init() {
	sortCmd.Flags().BoolVar(&sortDryRun, "dry-run", false, "Show what would move without touching anything")
	sortCmd.Flags().StringVar(&sortDir, "dir", "", "Sort the immediate files of this directory")
}
