package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// tappable wraps an arbitrary canvas object into a flat clickable
// surface with hover feedback. Cards and navigation rows build on it.
type tappable struct {
	widget.BaseWidget

	content fyne.CanvasObject
	onTap   func()

	hovered bool
	stroked bool
}

func newTappable(content fyne.CanvasObject, onTap func()) *tappable {
	t := &tappable{content: content, onTap: onTap}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tappable) Tapped(_ *fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}

func (t *tappable) Cursor() desktop.Cursor { return desktop.PointerCursor }

func (t *tappable) MouseIn(_ *desktop.MouseEvent) { t.setHovered(true) }

func (t *tappable) MouseMoved(_ *desktop.MouseEvent) {}

func (t *tappable) MouseOut() { t.setHovered(false) }

func (t *tappable) setHovered(over bool) {
	t.hovered = over
	t.Refresh()
}

// setStroked toggles an accent outline; active toggle cards use it to
// show their on state.
func (t *tappable) setStroked(on bool) {
	t.stroked = on
	t.Refresh()
}

func (t *tappable) CreateRenderer() fyne.WidgetRenderer {
	t.ExtendBaseWidget(t)
	background := canvas.NewRectangle(color.Transparent)
	return &tappableRenderer{t: t, background: background}
}

type tappableRenderer struct {
	t          *tappable
	background *canvas.Rectangle
}

func (r *tappableRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	pad := theme.Size(theme.SizeNamePadding)
	r.t.content.Move(fyne.NewPos(pad, pad))
	r.t.content.Resize(fyne.NewSize(size.Width-2*pad, size.Height-2*pad))
}

func (r *tappableRenderer) MinSize() fyne.Size {
	pad := theme.Size(theme.SizeNamePadding)
	min := r.t.content.MinSize()
	return fyne.NewSize(min.Width+2*pad, min.Height+2*pad)
}

func (r *tappableRenderer) Refresh() {
	if r.t.hovered {
		r.background.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.background.FillColor = color.Transparent
	}
	if r.t.stroked {
		r.background.StrokeColor = theme.Color(theme.ColorNamePrimary)
		r.background.StrokeWidth = 2
	} else {
		r.background.StrokeWidth = 0
	}
	r.background.CornerRadius = theme.Size(theme.SizeNameInputRadius)
	r.background.Refresh()
	r.t.content.Refresh()
}

func (r *tappableRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.t.content}
}

func (r *tappableRenderer) Destroy() {}

var (
	_ fyne.Tappable      = (*tappable)(nil)
	_ desktop.Hoverable  = (*tappable)(nil)
	_ desktop.Cursorable = (*tappable)(nil)
)
