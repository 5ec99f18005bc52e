package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/dropsort/dropsort/pkg/gui/components"
	"github.com/dropsort/dropsort/pkg/types"
)

// View owns the UI components and their layout. Handlers are wired in
// by the App after construction.
type View struct {
	window fyne.Window

	toolbar       *components.Toolbar
	dropZone      *components.DropZone
	ruleList      *components.RuleList
	statusBar     *components.StatusBar
	mainContainer *fyne.Container
}

func NewView(window fyne.Window) *View {
	view := &View{window: window}
	view.setupComponents()
	view.setupLayout()
	return view
}

func (v *View) setupComponents() {
	v.toolbar = components.NewToolbar()
	v.dropZone = components.NewDropZone()
	v.ruleList = components.NewRuleList()
	v.statusBar = components.NewStatusBar()
}

func (v *View) setupLayout() {
	center := container.NewBorder(
		v.dropZone.GetContainer(),
		nil, nil, nil,
		v.ruleList.GetList(),
	)
	v.mainContainer = container.NewBorder(
		v.toolbar.GetContainer(),
		v.statusBar.GetContainer(),
		nil, nil,
		center,
	)
}

func (v *View) GetMainContainer() *fyne.Container {
	return v.mainContainer
}

// SetRules refreshes the rule list and the rule counter together.
func (v *View) SetRules(rules types.RuleSet) {
	v.ruleList.SetRules(rules)
	v.statusBar.SetRuleCount(len(rules))
}

func (v *View) SetStatus(status string) {
	v.statusBar.SetStatus(status)
}

func (v *View) SetReport(report types.SortReport) {
	v.statusBar.SetReport(report)
}

func (v *View) SetBusy(busy bool) {
	v.dropZone.SetBusy(busy)
}
