package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type Toolbar struct {
	container        *fyne.Container
	AddButton        *widget.Button
	SortFolderButton *widget.Button
	UndoButton       *widget.Button
	ManualButton     *widget.Button

	addRuleHandler    func()
	sortFolderHandler func()
	undoHandler       func()
	manualHandler     func()
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.setupToolbar()
	return toolbar
}

func (t *Toolbar) setupToolbar() {
	t.AddButton = widget.NewButton("Add Folder", t.onAddRule)
	t.AddButton.Importance = widget.HighImportance
	t.SortFolderButton = widget.NewButton("Sort Folder...", t.onSortFolder)
	t.UndoButton = widget.NewButton("Undo Last Sort", t.onUndo)
	t.ManualButton = widget.NewButton("Manual", t.onManual)

	t.container = container.NewHBox(
		t.AddButton,
		t.SortFolderButton,
		widget.NewSeparator(),
		t.UndoButton,
		t.ManualButton,
	)
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetAddRuleHandler(handler func())    { t.addRuleHandler = handler }
func (t *Toolbar) SetSortFolderHandler(handler func()) { t.sortFolderHandler = handler }
func (t *Toolbar) SetUndoHandler(handler func())       { t.undoHandler = handler }
func (t *Toolbar) SetManualHandler(handler func())     { t.manualHandler = handler }

func (t *Toolbar) onAddRule() {
	if t.addRuleHandler != nil {
		t.addRuleHandler()
	}
}

func (t *Toolbar) onSortFolder() {
	if t.sortFolderHandler != nil {
		t.sortFolderHandler()
	}
}

func (t *Toolbar) onUndo() {
	if t.undoHandler != nil {
		t.undoHandler()
	}
}

func (t *Toolbar) onManual() {
	if t.manualHandler != nil {
		t.manualHandler()
	}
}
