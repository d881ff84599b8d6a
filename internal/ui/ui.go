// Package ui builds fyne widgets from configuration items: rows,
// cards, banners, and the sections and grids that group them.
//
// Every built item comes back as a Row pairing the canvas object with
// its teardown. Background work (icon refresh, state monitors, value
// polling, debounce timers) arms through the row's lifecycle guard,
// and Destroy is the one place that drains it. A broken item never
// takes a page down with it: unknown kinds degrade to a button row and
// a builder panic becomes a visible placeholder.
package ui

import (
	"github.com/duskydesk/duskycc/internal/command"
	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/lifecycle"
	"github.com/duskydesk/duskycc/internal/poll"
	"github.com/duskydesk/duskycc/internal/settings"

	"fyne.io/fyne/v2"
)

// Context carries the services rows need to act. The window shell
// fills one per page; nil function fields fall back to the real
// launchers or to no-ops, which keeps builders usable headless.
type Context struct {
	// Store persists toggle and entry state. Rows with a key but no
	// store skip persistence.
	Store *settings.Store

	// Pool runs command captures off the UI thread.
	Pool poll.Submitter

	// Sched arms wall-clock timers. Nil selects real timers.
	Sched poll.Scheduler

	// Dispatch marshals widget updates onto the UI thread. Nil runs
	// them inline.
	Dispatch poll.Dispatcher

	// Capture overrides command output capture, mainly for tests.
	Capture poll.CaptureFunc

	// Launch starts a command through the session wrapper.
	Launch func(cmdline, title string, inTerminal bool) error

	// LaunchShell starts a command directly through the shell.
	LaunchShell func(cmdline string) error

	// SaveSecret overrides keyring persistence for secret entry rows,
	// mainly for tests.
	SaveSecret func(key, value string) error

	// Toast shows a transient notification for the given duration.
	Toast func(message string, seconds int)

	// Redirect asks the shell to select another page by id.
	Redirect func(pageID string)

	// PushSubpage asks the shell to open a nested layout.
	PushSubpage func(title string, layout []config.Section)

	// Visible reports whether the hosting page is on screen. Polling
	// ticks skip their work while it returns false.
	Visible func() bool
}

func (c *Context) launch(cmdline, title string, inTerminal bool) error {
	if c.Launch != nil {
		return c.Launch(cmdline, title, inTerminal)
	}
	return command.Launch(cmdline, title, inTerminal)
}

func (c *Context) launchShell(cmdline string) error {
	if c.LaunchShell != nil {
		return c.LaunchShell(cmdline)
	}
	return command.LaunchShell(cmdline)
}

func (c *Context) saveSecret(key, value string) error {
	if c.SaveSecret != nil {
		return c.SaveSecret(key, value)
	}
	return settings.SaveSecret(key, value)
}

func (c *Context) toast(message string, seconds int) {
	if c.Toast != nil {
		c.Toast(message, seconds)
	}
}

func (c *Context) redirect(pageID string) {
	if c.Redirect != nil {
		c.Redirect(pageID)
	}
}

func (c *Context) pushSubpage(title string, layout []config.Section) {
	if c.PushSubpage != nil {
		c.PushSubpage(title, layout)
	}
}

func (c *Context) visible() func() bool {
	if c.Visible != nil {
		return c.Visible
	}
	return func() bool { return true }
}

func (c *Context) dispatch(fn func()) {
	if c.Dispatch == nil {
		fn()
		return
	}
	c.Dispatch(fn)
}

func (c *Context) sched() poll.Scheduler {
	if c.Sched != nil {
		return c.Sched
	}
	return poll.TimerScheduler{}
}

// Row is one built configuration item: the object to place in the
// page and the teardown that stops its background work.
type Row struct {
	object   fyne.CanvasObject
	guard    lifecycle.Guard
	children []*Row
}

func newRow() *Row { return &Row{} }

// Object returns the canvas object to show.
func (r *Row) Object() fyne.CanvasObject { return r.object }

// Destroy marks the row dead and stops every armed timer. Work already
// running finishes on its own and is discarded on arrival. Destroy
// cascades to nested rows and is safe to call more than once.
func (r *Row) Destroy() {
	for _, h := range r.guard.MarkDestroyedAndDrain() {
		h.Stop()
	}
	for _, child := range r.children {
		child.Destroy()
	}
}

// stateView adapts a closure pair to the monitor loop's target.
type stateView struct {
	visible func() bool
	apply   func(bool)
}

func (v *stateView) Mapped() bool       { return v.visible() }
func (v *stateView) ApplyState(on bool) { v.apply(on) }

// valueView adapts a closure pair to the value loop's target.
type valueView struct {
	visible func() bool
	apply   func(string)
}

func (v *valueView) Mapped() bool           { return v.visible() }
func (v *valueView) ApplyValue(text string) { v.apply(text) }
