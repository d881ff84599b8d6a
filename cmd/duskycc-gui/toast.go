package main

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rivo/uniseg"

	"github.com/duskydesk/duskycc/internal/lifecycle"
	"github.com/duskydesk/duskycc/internal/poll"
)

const (
	defaultToastSeconds = 2
	toastBottomMargin   = 24
	toastTextLimit      = 200
)

// toaster shows one transient popup at a time near the bottom of the
// canvas. Showing a new toast replaces the current one; the timeout
// only hides the popup it was armed for.
type toaster struct {
	canvas   fyne.Canvas
	sched    poll.Scheduler
	dispatch poll.Dispatcher

	mu    sync.Mutex
	popup *widget.PopUp
	timer lifecycle.Handle
	gen   uint64
}

func newToaster(canvas fyne.Canvas) *toaster {
	return &toaster{
		canvas:   canvas,
		sched:    poll.TimerScheduler{},
		dispatch: func(fn func()) { safeDo("toast", fn) },
	}
}

func (t *toaster) Show(message string, seconds int) {
	if t == nil {
		return
	}
	label := widget.NewLabel(clipGraphemes(message, toastTextLimit))
	label.Alignment = fyne.TextAlignCenter
	popup := widget.NewPopUp(container.NewPadded(label), t.canvas)

	t.mu.Lock()
	t.gen++
	gen := t.gen
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.popup != nil {
		t.popup.Hide()
	}
	t.popup = popup
	dispatch := t.dispatch
	t.timer = t.sched.Schedule(toastDuration(seconds), func() {
		if dispatch == nil {
			t.expire(gen)
			return
		}
		dispatch(func() { t.expire(gen) })
	})
	t.mu.Unlock()

	size := t.canvas.Size()
	min := popup.MinSize()
	popup.ShowAtPosition(fyne.NewPos(
		(size.Width-min.Width)/2,
		size.Height-min.Height-toastBottomMargin,
	))
}

func (t *toaster) expire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen || t.popup == nil {
		return
	}
	t.popup.Hide()
	t.popup = nil
	t.timer = nil
}

func toastDuration(seconds int) time.Duration {
	if seconds <= 0 {
		seconds = defaultToastSeconds
	}
	return time.Duration(seconds) * time.Second
}

// clipGraphemes cuts s after n grapheme clusters so a multi-byte
// character is never split mid-cluster.
func clipGraphemes(s string, n int) string {
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
