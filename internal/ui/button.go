package ui

import (
	"strings"

	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/config"
)

// buildButtonRow builds a row whose trailing button fires the press
// action: an exec launch with a result toast, or a page redirect.
func buildButtonRow(ctx *Context, item *config.Item) *Row {
	r := newRow()
	p := item.Properties
	action := item.OnPress

	btn := widget.NewButton(titleOrDefault(p.ButtonText, "Run"), nil)
	switch strings.ToLower(strings.TrimSpace(p.Style)) {
	case "destructive":
		btn.Importance = widget.DangerImportance
	case "suggested":
		btn.Importance = widget.HighImportance
	}
	btn.OnTapped = func() {
		if action == nil {
			return
		}
		switch action.Kind {
		case config.ActionExec:
			launchWithToast(ctx, action, titleOrDefault(p.Title, "Command"))
		case config.ActionRedirect:
			if action.Page != "" {
				ctx.redirect(action.Page)
			}
		}
	}

	r.object = newBaseRow(ctx, r, p, btn)
	return r
}
