package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DropZone is the visual target for dropped files. Drop events
// themselves arrive through the window's OnDropped hook, this widget
// only shows the instructions and the busy state.
type DropZone struct {
	container *fyne.Container
	icon      *widget.Icon
	label     *widget.Label
	busy      *widget.ProgressBarInfinite
}

func NewDropZone() *DropZone {
	zone := &DropZone{}
	zone.setupZone()
	return zone
}

func (z *DropZone) setupZone() {
	z.icon = widget.NewIcon(theme.DownloadIcon())
	z.label = widget.NewLabel("Drop files here to sort them")
	z.label.Alignment = fyne.TextAlignCenter
	z.busy = widget.NewProgressBarInfinite()
	z.busy.Hide()

	z.container = container.NewVBox(
		widget.NewSeparator(),
		container.NewCenter(z.icon),
		z.label,
		z.busy,
		widget.NewSeparator(),
	)
}

func (z *DropZone) GetContainer() *fyne.Container {
	return z.container
}

func (z *DropZone) SetBusy(busy bool) {
	if busy {
		z.label.SetText("Sorting...")
		z.busy.Show()
		return
	}
	z.label.SetText("Drop files here to sort them")
	z.busy.Hide()
}
