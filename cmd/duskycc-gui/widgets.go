package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// minSizeBox forces a minimum size on a stack container without
// drawing anything.
type minSizeBox struct {
	size fyne.Size
	pos  fyne.Position
}

func (m *minSizeBox) MinSize() fyne.Size      { return m.size }
func (m *minSizeBox) Size() fyne.Size         { return m.size }
func (m *minSizeBox) Position() fyne.Position { return m.pos }
func (m *minSizeBox) Resize(s fyne.Size)      { m.size = s }
func (m *minSizeBox) Move(p fyne.Position)    { m.pos = p }
func (m *minSizeBox) Show()                   {}
func (m *minSizeBox) Hide()                   {}
func (m *minSizeBox) Visible() bool           { return false }
func (m *minSizeBox) Refresh()                {}

// searchEntry hands Escape back to the shell instead of swallowing it,
// so the search bar can be dismissed while the entry has focus.
type searchEntry struct {
	widget.Entry
	onEscape func()
}

func newSearchEntry() *searchEntry {
	e := &searchEntry{}
	e.ExtendBaseWidget(e)
	return e
}

func (e *searchEntry) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(ev)
}
