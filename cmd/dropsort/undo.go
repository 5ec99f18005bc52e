package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropsort/dropsort/pkg/style"
)

var (
	undoList bool

	undoCmd = &cobra.Command{
		Use:   "undo [batch-id]",
		Short: "Move the files of a sort batch back where they came from",
		Long: `Undo the most recent sort batch, or the named one. Files moved or
deleted since the batch ran stay where they are and are reported as
missed. With --list the recent batches are shown instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			hist, err := e.openHistory()
			if err != nil {
				return err
			}
			defer hist.Close()

			if undoList {
				batches, err := hist.RecentBatches(20)
				if err != nil {
					return err
				}
				if len(batches) == 0 {
					fmt.Println(style.Muted("No sort batches recorded."))
					return nil
				}
				for _, b := range batches {
					fmt.Printf("%s  %s  %d files\n",
						b.ID, b.StartedAt.Format("2006-01-02 15:04:05"), b.MoveCount)
				}
				return nil
			}

			if len(args) == 1 {
				report, err := hist.UndoBatch(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s Restored %d files, missed %d\n",
					style.SuccessIndicator, report.Restored, report.Missed)
				return nil
			}

			batchID, report, err := hist.UndoLast()
			if err != nil {
				return err
			}
			if batchID == "" {
				fmt.Println(style.Muted("Nothing to undo."))
				return nil
			}
			fmt.Printf("%s Undid batch %s: restored %d files, missed %d\n",
				style.SuccessIndicator, batchID, report.Restored, report.Missed)
			return nil
		},
	}
)

func init() {
	undoCmd.Flags().BoolVar(&undoList, "list", false, "List recent sort batches")
}
