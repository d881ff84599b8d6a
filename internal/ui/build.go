package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/rivo/uniseg"

	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/logger"
)

// errorTextLimit caps the failure detail shown on a placeholder row.
const errorTextLimit = 80

// cardCellSize is the uniform cell of grid sections, sized for a hero
// icon over a wrapped two line caption.
var cardCellSize = fyne.NewSize(150, 130)

// BuildItem builds one list-context row for a configuration item.
// Cards placed in a list render as their row counterparts, unknown
// kinds default to a button row, and a panicking builder is replaced
// by a visible error placeholder so the rest of the page survives.
func BuildItem(ctx *Context, item *config.Item) (row *Row) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Failed to build row", "type", item.RawKind, "panic", rec)
			row = errorRow(titleOrDefault(item.Properties.Title, "Unknown"), fmt.Sprint(rec))
		}
	}()

	switch item.Kind {
	case config.KindButton, config.KindGridCard:
		return buildButtonRow(ctx, item)
	case config.KindToggle, config.KindToggleCard:
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
	case config.KindWarningBanner:
		return buildWarningBanner(item)
	default:
		logger.Warn("Unknown item type, defaulting to button", "type", item.RawKind)
		return buildButtonRow(ctx, item)
	}
}

// buildCard builds one grid cell. Toggle cards keep their state;
// every other kind acts as a plain action card.
func buildCard(ctx *Context, item *config.Item) (row *Row) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Failed to build card", "type", item.RawKind, "panic", rec)
			row = errorRow(titleOrDefault(item.Properties.Title, "Unknown"), fmt.Sprint(rec))
		}
	}()

	if item.Kind == config.KindToggleCard {
		return buildToggleCard(ctx, item)
	}
	return buildGridCard(ctx, item)
}

// errorRow is the placeholder substituted for a row that failed to
// build.
func errorRow(title, detail string) *Row {
	r := newRow()
	name := widget.NewLabel("⚠ " + title)
	name.Importance = widget.DangerImportance
	sub := widget.NewLabel("Build error: " + truncateGraphemes(detail, errorTextLimit))
	sub.Importance = widget.LowImportance
	sub.Truncation = fyne.TextTruncateEllipsis
	r.object = container.NewVBox(name, sub)
	return r
}

// truncateGraphemes cuts s after n grapheme clusters, keeping user
// visible characters whole.
func truncateGraphemes(s string, n int) string {
	if uniseg.GraphemeClusterCount(s) <= n {
		return s
	}
	g := uniseg.NewGraphemes(s)
	end := 0
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end]
}

// BuildSection builds a list section: an optional heading and
// description over its rows.
func BuildSection(ctx *Context, sec *config.Section) (fyne.CanvasObject, []*Row) {
	box := container.NewVBox()
	p := sec.Properties
	if title := strings.TrimSpace(p.Title); title != "" {
		heading := widget.NewLabel(title)
		heading.TextStyle = fyne.TextStyle{Bold: true}
		box.Add(heading)
	}
	if desc := strings.TrimSpace(p.Description); desc != "" {
		sub := widget.NewLabel(desc)
		sub.Importance = widget.LowImportance
		sub.Wrapping = fyne.TextWrapWord
		box.Add(sub)
	}

	rows := make([]*Row, 0, len(sec.Items))
	for i := range sec.Items {
		row := BuildItem(ctx, &sec.Items[i])
		rows = append(rows, row)
		box.Add(row.Object())
	}
	return box, rows
}

// BuildGridSection builds a grid section: an optional heading over a
// wrapping flow of uniform cards.
func BuildGridSection(ctx *Context, sec *config.Section) (fyne.CanvasObject, []*Row) {
	box := container.NewVBox()
	if title := strings.TrimSpace(sec.Properties.Title); title != "" {
		heading := widget.NewLabel(title)
		heading.TextStyle = fyne.TextStyle{Bold: true}
		box.Add(heading)
	}

	grid := container.NewGridWrap(cardCellSize)
	rows := make([]*Row, 0, len(sec.Items))
	for i := range sec.Items {
		row := buildCard(ctx, &sec.Items[i])
		rows = append(rows, row)
		grid.Add(row.Object())
	}
	box.Add(grid)
	return box, rows
}

// BuildLayout builds a page body from its sections. The returned rows
// are every row built anywhere in the layout; destroying them releases
// the page's background work.
func BuildLayout(ctx *Context, layout []config.Section) (fyne.CanvasObject, []*Row) {
	box := container.NewVBox()
	var all []*Row
	for i := range layout {
		sec := &layout[i]
		var (
			obj  fyne.CanvasObject
			rows []*Row
		)
		if sec.Kind == config.SectionGrid {
			obj, rows = BuildGridSection(ctx, sec)
		} else {
			obj, rows = BuildSection(ctx, sec)
		}
		box.Add(obj)
		all = append(all, rows...)
	}
	return box, all
}

// DestroyRows tears down every row in the slice.
func DestroyRows(rows []*Row) {
	for _, r := range rows {
		r.Destroy()
	}
}
