package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/style"
	"github.com/dropsort/dropsort/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and sort new files as they appear",
	Long: `Watch a directory and sort each new file once it has settled. With no
argument the watch.dir setting from the config file is used. Stop with
Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		dir := e.settings.Watch.Dir
		if len(args) == 1 {
			dir = args[0]
		}
		if dir == "" {
			return errors.New(errors.ErrInvalidInput, "no directory: pass one or set watch.dir")
		}
		if dir, err = expandPath(dir); err != nil {
			return err
		}

		hist, err := e.openHistory()
		if err != nil {
			return err
		}
		defer hist.Close()

		srt := e.newSorter(false, hist)
		w := watcher.New(dir, srt, e.settings.SettleDelay(), e.settings.Sort.IncludeHidden)
		w.OnReport = func(source string, err error) {
			switch {
			case err == nil:
				fmt.Printf("%s %s\n", style.SuccessIndicator, source)
			case errors.IsErrorCode(err, errors.ErrNoMatchingRule):
				fmt.Printf("%s %s %s\n", style.InfoIndicator, source,
					style.Muted("no matching rule"))
			default:
				fmt.Println(style.RenderError(err))
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s (Ctrl-C to stop)\n", style.Path(dir))
		return w.Watch(ctx)
	},
}
