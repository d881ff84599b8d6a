package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/config"
)

// titleOrDefault substitutes a fallback for blank titles.
func titleOrDefault(title, fallback string) string {
	if strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}

// titleBlock stacks the row title over its optional description.
func titleBlock(p config.Properties) fyne.CanvasObject {
	title := widget.NewLabel(titleOrDefault(p.Title, "Unnamed"))
	title.Truncation = fyne.TextTruncateEllipsis
	if strings.TrimSpace(p.Description) == "" {
		return title
	}
	subtitle := widget.NewLabel(p.Description)
	subtitle.Importance = widget.LowImportance
	subtitle.Truncation = fyne.TextTruncateEllipsis
	return container.NewVBox(title, subtitle)
}

// newBaseRow assembles the standard list row chrome: prefix icon,
// title and description stack, and a trailing control.
func newBaseRow(ctx *Context, r *Row, p config.Properties, suffix fyne.CanvasObject) fyne.CanvasObject {
	icon := newRowIcon(ctx, r, p.Icon)
	return container.NewBorder(nil, nil, icon, suffix, titleBlock(p))
}

// launchWithToast fires an exec action and reports the outcome the way
// list rows do: a short toast on launch, a longer one on failure.
func launchWithToast(ctx *Context, action *config.Action, title string) {
	cmdline := strings.TrimSpace(action.Command)
	if cmdline == "" {
		return
	}
	if err := ctx.launch(cmdline, title, action.Terminal); err != nil {
		ctx.toast("✖ Failed: "+title, 4)
		return
	}
	ctx.toast("▶ Launched: "+title, 2)
}

// runToggleBranch fires the exec bound to one switch direction, if the
// action carries one. Branch launches are silent; the launcher logs
// its own failures.
func runToggleBranch(ctx *Context, action *config.Action, on bool) {
	if action == nil || action.Kind != config.ActionToggle {
		return
	}
	branch := action.Disabled
	if on {
		branch = action.Enabled
	}
	if branch == nil {
		return
	}
	cmdline := strings.TrimSpace(branch.Command)
	if cmdline == "" {
		return
	}
	_ = ctx.launch(cmdline, "Toggle", branch.Terminal)
}
