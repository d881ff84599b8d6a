package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/lifecycle"
)

// stubSched collects scheduled callbacks for the test to fire. Stopped
// entries stay queued but never run, mirroring cancelled timers.
type stubSched struct {
	pending []*schedEntry
}

type schedEntry struct {
	fn      func()
	stopped bool
}

func (s *stubSched) Schedule(d time.Duration, fn func()) lifecycle.Handle {
	e := &schedEntry{fn: fn}
	s.pending = append(s.pending, e)
	return lifecycle.StopFunc(func() { e.stopped = true })
}

// live counts the armed, not yet cancelled timers.
func (s *stubSched) live() int {
	n := 0
	for _, e := range s.pending {
		if !e.stopped {
			n++
		}
	}
	return n
}

// fire runs every live callback; callbacks re-arming a timer land in
// the next batch.
func (s *stubSched) fire() {
	entries := s.pending
	s.pending = nil
	for _, e := range entries {
		if !e.stopped {
			e.fn()
		}
	}
}

type errString string

func (e errString) Error() string { return string(e) }

// stubPool holds submitted tasks until the test runs them.
type stubPool struct {
	tasks []func()
}

func (p *stubPool) Submit(task func()) bool {
	p.tasks = append(p.tasks, task)
	return true
}

func (p *stubPool) runAll() {
	tasks := p.tasks
	p.tasks = nil
	for _, task := range tasks {
		task()
	}
}

// collectObjects flattens a built canvas tree, descending into
// containers and this package's own widgets.
func collectObjects(obj fyne.CanvasObject) []fyne.CanvasObject {
	out := []fyne.CanvasObject{obj}
	switch o := obj.(type) {
	case *fyne.Container:
		for _, child := range o.Objects {
			out = append(out, collectObjects(child)...)
		}
	case *tappable:
		out = append(out, collectObjects(o.content)...)
	}
	return out
}

func findSlider(t *testing.T, root fyne.CanvasObject) *widget.Slider {
	t.Helper()
	for _, obj := range collectObjects(root) {
		if s, ok := obj.(*widget.Slider); ok {
			return s
		}
	}
	t.Fatal("no slider in the built row")
	return nil
}

func findCheck(t *testing.T, root fyne.CanvasObject) *widget.Check {
	t.Helper()
	for _, obj := range collectObjects(root) {
		if c, ok := obj.(*widget.Check); ok {
			return c
		}
	}
	t.Fatal("no check in the built row")
	return nil
}

func findSelect(t *testing.T, root fyne.CanvasObject) *widget.Select {
	t.Helper()
	for _, obj := range collectObjects(root) {
		if s, ok := obj.(*widget.Select); ok {
			return s
		}
	}
	t.Fatal("no select in the built row")
	return nil
}

func findEntry(t *testing.T, root fyne.CanvasObject) *widget.Entry {
	t.Helper()
	for _, obj := range collectObjects(root) {
		if e, ok := obj.(*widget.Entry); ok {
			return e
		}
	}
	t.Fatal("no entry in the built row")
	return nil
}

func findButton(t *testing.T, root fyne.CanvasObject, label string) *widget.Button {
	t.Helper()
	for _, obj := range collectObjects(root) {
		if b, ok := obj.(*widget.Button); ok && b.Text == label {
			return b
		}
	}
	t.Fatalf("no %q button in the built row", label)
	return nil
}

// labelTexts returns the text of every label in the tree, in layout
// order.
func labelTexts(root fyne.CanvasObject) []string {
	var out []string
	for _, obj := range collectObjects(root) {
		if l, ok := obj.(*widget.Label); ok {
			out = append(out, l.Text)
		}
	}
	return out
}

func hasLabel(root fyne.CanvasObject, text string) bool {
	for _, got := range labelTexts(root) {
		if got == text {
			return true
		}
	}
	return false
}
