package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/logger"
)

// newCardIcon builds the hero icon of a grid card. Cards resolve icon
// names only; file icons fall back to their static name.
func newCardIcon(ctx *Context, r *Row, ic config.Icon) *canvas.Image {
	img := canvas.NewImageFromResource(IconResource(ic.StaticName()))
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(cardIconSize, cardIconSize))
	if ic.Dynamic() {
		startIconLoop(ctx, r, ic, func(res fyne.Resource) {
			img.Resource = res
			img.Refresh()
		})
	}
	return img
}

// newCardTitle builds the wrapped, centered caption under a card icon.
func newCardTitle(text, style string) *widget.Label {
	title := widget.NewLabel(text)
	title.Alignment = fyne.TextAlignCenter
	title.Wrapping = fyne.TextWrapWord
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "destructive":
		title.Importance = widget.DangerImportance
	case "suggested":
		title.Importance = widget.HighImportance
	}
	return title
}

// buildGridCard builds a clickable hero card. An exec action launches
// with a bare outcome toast; a redirect selects the target page.
func buildGridCard(ctx *Context, item *config.Item) *Row {
	r := newRow()
	p := item.Properties
	action := item.OnPress

	content := container.NewVBox(
		newCardIcon(ctx, r, p.Icon),
		newCardTitle(titleOrDefault(p.Title, "Unnamed"), p.Style),
	)

	r.object = newTappable(container.NewCenter(content), func() {
		if action == nil {
			return
		}
		switch action.Kind {
		case config.ActionExec:
			cmdline := strings.TrimSpace(action.Command)
			if cmdline == "" {
				return
			}
			if err := ctx.launch(cmdline, "Command", action.Terminal); err != nil {
				ctx.toast("✖ Failed", 2)
				return
			}
			ctx.toast("▶ Launched", 2)
		case config.ActionRedirect:
			if action.Page != "" {
				ctx.redirect(action.Page)
			}
		}
	})
	return r
}

// buildToggleCard builds a hero card that flips between On and Off.
// A click updates the visuals first, then fires the matching toggle
// branch and persists the state; the monitor only touches the visuals.
func buildToggleCard(ctx *Context, item *config.Item) *Row {
	r := newRow()
	p := item.Properties
	key := strings.TrimSpace(p.Key)

	status := widget.NewLabel("Off")
	status.Alignment = fyne.TextAlignCenter
	status.Importance = widget.LowImportance

	content := container.NewVBox(
		newCardIcon(ctx, r, p.Icon),
		newCardTitle(titleOrDefault(p.Title, "Toggle"), p.Style),
		status,
	)

	active := false
	card := newTappable(container.NewCenter(content), nil)
	setVisual := func(on bool) {
		active = on
		if on {
			status.SetText("On")
		} else {
			status.SetText("Off")
		}
		card.setStroked(on)
	}

	if key != "" && ctx.Store != nil {
		if ctx.Store.LoadBool(key, false, p.KeyInverse) {
			setVisual(true)
		}
	}

	card.onTap = func() {
		on := !active
		setVisual(on)
		runToggleBranch(ctx, item.OnToggle, on)
		if key != "" && ctx.Store != nil {
			if err := ctx.Store.SaveBool(key, on != p.KeyInverse, p.SaveAsInt); err != nil {
				logger.Warn("Failed to persist toggle state", "key", key, "error", err)
			}
		}
	}

	startStateMonitor(ctx, r, p, func(on bool) {
		if on != active {
			setVisual(on)
		}
	})

	r.object = card
	return r
}
