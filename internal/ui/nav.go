package ui

import (
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/logger"
)

// buildNavigationRow builds a row that pushes its nested layout as a
// subpage when tapped anywhere.
func buildNavigationRow(ctx *Context, item *config.Item) *Row {
	r := newRow()
	p := item.Properties
	layout := item.Layout

	icon := newRowIcon(ctx, r, p.Icon)
	chevron := widget.NewIcon(theme.NavigateNextIcon())
	content := container.NewBorder(nil, nil, icon, chevron, titleBlock(p))

	r.object = newTappable(content, func() {
		ctx.pushSubpage(titleOrDefault(p.Title, "Subpage"), layout)
	})
	return r
}

// buildExpanderRow builds a collapsible group of child rows. The
// header carries the usual icon and title chrome; tapping it flips the
// children in and out.
func buildExpanderRow(ctx *Context, item *config.Item) *Row {
	r := newRow()
	p := item.Properties

	childBox := container.NewVBox()
	for i := range item.Items {
		child := buildChildItem(ctx, &item.Items[i])
		if child == nil {
			continue
		}
		r.children = append(r.children, child)
		childBox.Add(child.Object())
	}
	childBox.Hide()

	icon := newRowIcon(ctx, r, p.Icon)
	arrow := widget.NewIcon(theme.MenuDropDownIcon())
	header := container.NewBorder(nil, nil, icon, arrow, titleBlock(p))

	expanded := false
	toggle := newTappable(header, func() {
		expanded = !expanded
		if expanded {
			arrow.SetResource(theme.MenuDropUpIcon())
			childBox.Show()
		} else {
			arrow.SetResource(theme.MenuDropDownIcon())
			childBox.Hide()
		}
	})

	r.object = container.NewVBox(toggle, childBox)
	return r
}

// buildChildItem builds one expander child. Unknown kinds are skipped
// with a warning, and a child whose builder panics is skipped too, so
// one bad entry never loses the whole group.
func buildChildItem(ctx *Context, item *config.Item) (row *Row) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Failed to build child row", "type", item.RawKind, "panic", rec)
			row = nil
		}
	}()

	switch item.Kind {
	case config.KindButton:
		return buildButtonRow(ctx, item)
	case config.KindToggle:
		return buildToggleRow(ctx, item)
	case config.KindLabel:
		return buildLabelRow(ctx, item)
	case config.KindSlider:
		return buildSliderRow(ctx, item)
	case config.KindSelection:
		return buildSelectionRow(ctx, item)
	case config.KindEntry:
		return buildEntryRow(ctx, item)
	case config.KindNavigation:
		return buildNavigationRow(ctx, item)
	case config.KindExpander:
		return buildExpanderRow(ctx, item)
	default:
		logger.Warn("Unknown item type in expander, skipping", "type", item.RawKind)
		return nil
	}
}
