package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/dropsort/dropsort/pkg/manual"
	"github.com/dropsort/dropsort/pkg/rules"
	"github.com/dropsort/dropsort/pkg/types"
)

// handleAddRule asks for a destination folder first, then for the
// extensions that should land there.
func (a *App) handleAddRule() {
	dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if list == nil {
			return
		}
		a.showRuleForm(types.Rule{Destination: list.Path()})
	}, a.window)
}

func (a *App) handleEditRule(id string) {
	rule, err := a.rules.Get(id)
	if err != nil {
		a.showError(err)
		return
	}
	a.showRuleForm(rule)
}

// showRuleForm adds a new rule when rule.ID is empty, otherwise edits
// the existing one.
func (a *App) showRuleForm(rule types.Rule) {
	extsEntry := widget.NewEntry()
	extsEntry.SetPlaceHolder("pdf, epub, mobi")
	if len(rule.Extensions) > 0 {
		extsEntry.SetText(rules.FormatExtensions(rule.Extensions))
	}
	destLabel := widget.NewLabel(rule.Destination)
	destLabel.Truncation = fyne.TextTruncateEllipsis

	items := []*widget.FormItem{
		widget.NewFormItem("Destination", destLabel),
		widget.NewFormItem("Extensions", extsEntry),
	}

	title := "Add Rule"
	if rule.ID != "" {
		title = "Edit Rule"
	}

	dialog.ShowForm(title, "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		exts := rules.ParseExtensions(extsEntry.Text)
		var err error
		if rule.ID == "" {
			_, err = a.rules.Add(exts, rule.Destination)
		} else {
			_, err = a.rules.Edit(rule.ID, exts, "")
		}
		if err != nil {
			a.showError(err)
			return
		}
		a.refreshRules()
	}, a.window)
}

func (a *App) handleRemoveRule(id string) {
	rule, err := a.rules.Get(id)
	if err != nil {
		a.showError(err)
		return
	}
	message := fmt.Sprintf("Remove %q?\nFiles already sorted stay where they are.", rule.Label())
	dialog.ShowConfirm("Remove Rule", message, func(ok bool) {
		if !ok {
			return
		}
		if err := a.rules.Remove(id); err != nil {
			a.showError(err)
			return
		}
		a.refreshRules()
	}, a.window)
}

// showReport pops the batch summary. Runs on the UI goroutine.
func (a *App) showReport(report types.SortReport) {
	if len(report.Results) == 0 {
		dialog.ShowInformation("Sort Complete", "Nothing to sort.", a.window)
		return
	}
	message := fmt.Sprintf("Moved: %d\nSkipped: %d\nErrors: %d",
		report.Moved(), report.Skipped(), report.Failed())
	if n := report.Failed(); n > 0 {
		for _, res := range report.Results {
			if res.Status == types.StatusFailed && res.Err != nil {
				message += "\n\nFirst error: " + res.Err.Error()
				break
			}
		}
	}
	dialog.ShowInformation("Sort Complete", message, a.window)
}

func (a *App) handleManual() {
	window := a.fyneApp.NewWindow(appName + " Manual")
	text := widget.NewRichTextFromMarkdown(manual.Content())
	text.Wrapping = fyne.TextWrapWord
	window.SetContent(container.NewScroll(text))
	window.Resize(fyne.NewSize(560, 640))
	window.Show()
}
