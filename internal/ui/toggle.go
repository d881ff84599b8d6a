package ui

import (
	"strings"
	"time"

	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/logger"
	"github.com/duskydesk/duskycc/internal/poll"
)

// buildToggleRow builds a row with a trailing switch. The change
// handler fires the matching toggle branch and persists the state;
// programmatic updates (initial load, monitor sync) run under a
// suppression flag so only the user triggers it.
func buildToggleRow(ctx *Context, item *config.Item) *Row {
	r := newRow()
	p := item.Properties
	key := strings.TrimSpace(p.Key)

	var programmatic bool
	check := widget.NewCheck("", nil)
	if key != "" && ctx.Store != nil {
		check.Checked = ctx.Store.LoadBool(key, false, p.KeyInverse)
	}
	check.OnChanged = func(on bool) {
		if programmatic {
			return
		}
		runToggleBranch(ctx, item.OnToggle, on)
		if key != "" && ctx.Store != nil {
			if err := ctx.Store.SaveBool(key, on != p.KeyInverse, p.SaveAsInt); err != nil {
				logger.Warn("Failed to persist toggle state", "key", key, "error", err)
			}
		}
	}

	r.object = newBaseRow(ctx, r, p, check)

	startStateMonitor(ctx, r, p, func(on bool) {
		if on == check.Checked {
			return
		}
		programmatic = true
		check.SetChecked(on)
		programmatic = false
	})
	return r
}

// startStateMonitor arms external state polling for a toggle. The row
// needs a state source, and an explicit zero interval switches
// monitoring off entirely; an absent one selects the default cadence.
func startStateMonitor(ctx *Context, r *Row, p config.Properties, apply func(bool)) {
	key := strings.TrimSpace(p.Key)
	stateCmd := strings.TrimSpace(p.StateCommand)
	if key == "" && stateCmd == "" {
		return
	}
	interval := poll.MonitorInterval
	if p.IntervalSet {
		if p.Interval <= 0 {
			return
		}
		interval = time.Duration(p.Interval) * time.Second
	}

	var readKey func() bool
	if key != "" && ctx.Store != nil {
		inverse := p.KeyInverse
		store := ctx.Store
		readKey = func() bool { return store.LoadBool(key, false, inverse) }
	}
	poll.NewMonitorLoop(poll.MonitorConfig{
		Guard:        &r.guard,
		Pool:         ctx.Pool,
		Target:       &stateView{visible: ctx.visible(), apply: apply},
		StateCommand: stateCmd,
		ReadKey:      readKey,
		Interval:     interval,
		Sched:        ctx.Sched,
		Dispatch:     ctx.Dispatch,
		Capture:      ctx.Capture,
	}).Start()
}
