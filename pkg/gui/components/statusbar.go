package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/dropsort/dropsort/pkg/types"
)

type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	countLabel  *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	statusLabel.Truncation = fyne.TextTruncateEllipsis
	countLabel := widget.NewLabel("")

	mainContainer := container.NewBorder(
		nil, nil,
		nil,
		countLabel,
		statusLabel,
	)

	return &StatusBar{
		container:   mainContainer,
		statusLabel: statusLabel,
		countLabel:  countLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) SetRuleCount(n int) {
	switch n {
	case 0:
		sb.countLabel.SetText("no rules")
	case 1:
		sb.countLabel.SetText("1 rule")
	default:
		sb.countLabel.SetText(fmt.Sprintf("%d rules", n))
	}
}

// SetReport summarizes a finished sort batch in the status label.
func (sb *StatusBar) SetReport(report types.SortReport) {
	sb.statusLabel.SetText(fmt.Sprintf("Moved: %d  Skipped: %d  Errors: %d",
		report.Moved(), report.Skipped(), report.Failed()))
}
