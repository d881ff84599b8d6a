package ui

import (
	"strings"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/config"
)

// buildSelectionRow builds a row with a dropdown. Choosing an option
// fires the change action with {value} replaced by the option text;
// the initial selection of the first option does not fire it.
func buildSelectionRow(ctx *Context, item *config.Item) *Row {
	r := newRow()
	p := item.Properties
	action := item.OnChange

	sel := widget.NewSelect(p.Options, nil)
	if len(p.Options) > 0 {
		sel.Selected = p.Options[0]
	}
	sel.OnChanged = func(choice string) {
		if action == nil || action.Command == "" {
			return
		}
		final := strings.ReplaceAll(action.Command, "{value}", choice)
		_ = ctx.launch(final, "Selection", action.Terminal)
	}

	r.object = newBaseRow(ctx, r, p, sel)
	return r
}

// buildEntryRow builds a text input row with an apply button. The
// title doubles as the input placeholder unless the row names its own.
// Applying with empty text is a no-op. Secret rows conceal their input,
// persist the value to the OS keyring under the row key, and clear the
// field after a successful apply.
func buildEntryRow(ctx *Context, item *config.Item) *Row {
	r := newRow()
	p := item.Properties
	action := item.OnAction

	entry := widget.NewEntry()
	if p.Secret {
		entry = widget.NewPasswordEntry()
	}
	entry.PlaceHolder = titleOrDefault(p.Placeholder, titleOrDefault(p.Title, "Unnamed"))

	apply := widget.NewButton(titleOrDefault(p.ButtonText, "Apply"), nil)
	apply.Importance = widget.HighImportance
	apply.OnTapped = func() {
		text := entry.Text
		if text == "" {
			return
		}
		if p.Secret && p.Key != "" {
			if err := ctx.saveSecret(p.Key, text); err != nil {
				ctx.toast("✖ Failed: "+titleOrDefault(p.Title, "Secret"), 4)
				return
			}
			entry.SetText("")
		}
		if action == nil || action.Command == "" {
			return
		}
		final := strings.ReplaceAll(action.Command, "{value}", text)
		_ = ctx.launch(final, "Entry", action.Terminal)
	}

	icon := newRowIcon(ctx, r, p.Icon)
	r.object = container.NewBorder(nil, nil, icon, apply, entry)
	return r
}
