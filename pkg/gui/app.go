package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"github.com/rs/zerolog"

	"github.com/dropsort/dropsort/pkg/history"
	"github.com/dropsort/dropsort/pkg/logging"
	"github.com/dropsort/dropsort/pkg/rules"
	"github.com/dropsort/dropsort/pkg/sorter"
	"github.com/dropsort/dropsort/pkg/types"
)

const (
	appName      = "dropsort"
	appID        = "com.dropsort.dropsort"
	windowWidth  = 560
	windowHeight = 640
)

// App ties the widgets to the rule store, the sorter and the history
// journal. All sorting runs off the main goroutine, UI updates go
// through fyne.Do.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	view    *View

	fs      types.FS
	rules   *rules.Store
	sorter  *sorter.Sorter
	history *history.Store
	logger  zerolog.Logger
}

func NewApp(fs types.FS, ruleStore *rules.Store, srt *sorter.Sorter, hist *history.Store) *App {
	fyneApp := app.NewWithID(appID)

	window := fyneApp.NewWindow(appName)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))

	a := &App{
		fyneApp: fyneApp,
		window:  window,
		fs:      fs,
		rules:   ruleStore,
		sorter:  srt,
		history: hist,
		logger:  logging.GetLogger("gui"),
	}

	a.view = NewView(window)
	a.setupEventHandlers()

	return a
}

func (a *App) setupEventHandlers() {
	a.view.toolbar.SetAddRuleHandler(a.handleAddRule)
	a.view.toolbar.SetSortFolderHandler(a.handleSortFolder)
	a.view.toolbar.SetUndoHandler(a.handleUndo)
	a.view.toolbar.SetManualHandler(a.handleManual)
	a.view.ruleList.SetEditHandler(a.handleEditRule)
	a.view.ruleList.SetRemoveHandler(a.handleRemoveRule)
	a.window.SetOnDropped(a.handleDrop)
}

func (a *App) Run() {
	a.view.SetRules(a.rules.List())
	a.window.SetContent(a.view.GetMainContainer())

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.window.Close()
	})

	a.window.ShowAndRun()
}

func (a *App) cleanup() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("closing history store")
		}
	}
}

// handleDrop receives window-level drops. Dropped files are sorted as
// one batch, dropped directories each as their own batch.
func (a *App) handleDrop(_ fyne.Position, uris []fyne.URI) {
	var files, dirs []string
	for _, uri := range uris {
		path := uri.Path()
		if path == "" {
			continue
		}
		info, err := a.fs.Stat(path)
		if err != nil {
			a.logger.Warn().Str("path", path).Err(err).Msg("ignoring dropped item")
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
	}
	if len(files) == 0 && len(dirs) == 0 {
		return
	}

	a.view.SetBusy(true)
	a.view.SetStatus("Sorting...")

	go func() {
		combined := types.SortReport{}
		if len(files) > 0 {
			report := a.sorter.SortFiles(files)
			combined.Results = append(combined.Results, report.Results...)
		}
		for _, dir := range dirs {
			report, err := a.sorter.SortDirectory(dir)
			if err != nil {
				a.showError(err)
				continue
			}
			combined.Results = append(combined.Results, report.Results...)
		}
		a.finishSort(combined)
	}()
}

func (a *App) handleSortFolder() {
	dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if list == nil {
			return
		}
		dir := list.Path()

		a.view.SetBusy(true)
		a.view.SetStatus("Sorting " + dir + "...")

		go func() {
			report, err := a.sorter.SortDirectory(dir)
			if err != nil {
				fyne.Do(func() {
					a.view.SetBusy(false)
					a.view.SetStatus("Ready")
				})
				a.showError(err)
				return
			}
			a.finishSort(report)
		}()
	}, a.window)
}

// finishSort is called from sorting goroutines.
func (a *App) finishSort(report types.SortReport) {
	fyne.Do(func() {
		a.view.SetBusy(false)
		a.view.SetReport(report)
		a.showReport(report)
	})
}

func (a *App) handleUndo() {
	if a.history == nil {
		dialog.ShowInformation("Undo", "History is not available.", a.window)
		return
	}
	dialog.ShowConfirm("Undo Last Sort",
		"Move the files of the most recent sort back where they came from?",
		func(ok bool) {
			if !ok {
				return
			}
			go func() {
				batchID, undo, err := a.history.UndoLast()
				if err != nil {
					a.showError(err)
					return
				}
				fyne.Do(func() {
					if batchID == "" {
						a.view.SetStatus("Nothing to undo")
						return
					}
					a.view.SetStatus(fmt.Sprintf("Undo: restored %d, missed %d",
						undo.Restored, undo.Missed))
				})
			}()
		}, a.window)
}

func (a *App) refreshRules() {
	a.view.SetRules(a.rules.List())
}

// showError is safe to call from any goroutine.
func (a *App) showError(err error) {
	a.logger.Error().Err(err).Msg("gui operation failed")
	fyne.Do(func() {
		dialog.ShowError(err, a.window)
	})
}
