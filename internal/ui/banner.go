package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/config"
)

// buildWarningBanner builds a centered, non-interactive notice: a
// warning glyph over a heading and a wrapped message.
func buildWarningBanner(item *config.Item) *Row {
	r := newRow()
	p := item.Properties

	title := widget.NewLabel(titleOrDefault(p.Title, "Warning"))
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	message := widget.NewLabel(p.Message)
	message.Alignment = fyne.TextAlignCenter
	message.Wrapping = fyne.TextWrapWord

	r.object = container.NewVBox(
		container.NewCenter(widget.NewIcon(theme.WarningIcon())),
		title,
		message,
	)
	return r
}
