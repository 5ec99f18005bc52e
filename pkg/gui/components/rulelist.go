package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dropsort/dropsort/pkg/types"
)

// RuleList shows the configured rules in precedence order with
// per-row edit and remove buttons. It renders a snapshot, call
// SetRules after any change to the store.
type RuleList struct {
	list  *widget.List
	rules types.RuleSet

	editHandler   func(id string)
	removeHandler func(id string)
}

func NewRuleList() *RuleList {
	rl := &RuleList{}
	rl.setupList()
	return rl
}

func (rl *RuleList) setupList() {
	rl.list = widget.NewList(
		func() int {
			return len(rl.rules)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("rule")
			label.Truncation = fyne.TextTruncateEllipsis
			edit := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil)
			remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			return container.NewBorder(nil, nil, nil, container.NewHBox(edit, remove), label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(rl.rules) {
				return
			}
			rule := rl.rules[id]
			border := obj.(*fyne.Container)
			label := border.Objects[0].(*widget.Label)
			buttons := border.Objects[1].(*fyne.Container)
			edit := buttons.Objects[0].(*widget.Button)
			remove := buttons.Objects[1].(*widget.Button)

			label.SetText(rule.Label())
			edit.OnTapped = func() { rl.onEdit(rule.ID) }
			remove.OnTapped = func() { rl.onRemove(rule.ID) }
		},
	)
}

func (rl *RuleList) GetList() *widget.List {
	return rl.list
}

func (rl *RuleList) SetRules(rules types.RuleSet) {
	rl.rules = rules
	rl.list.Refresh()
}

func (rl *RuleList) SetEditHandler(handler func(id string))   { rl.editHandler = handler }
func (rl *RuleList) SetRemoveHandler(handler func(id string)) { rl.removeHandler = handler }

func (rl *RuleList) onEdit(id string) {
	if rl.editHandler != nil {
		rl.editHandler(id)
	}
}

func (rl *RuleList) onRemove(id string) {
	if rl.removeHandler != nil {
		rl.removeHandler(id)
	}
}
