// Package poll runs the periodic background work rows depend on: icon
// refreshes, toggle state monitoring, and label value loading.
//
// Each loop owns one timer slot and one reentrancy flag in the row's
// lifecycle guard. The tick skeleton is shared: a destroyed row stops
// its timer permanently, an unmapped row skips the tick's work, an
// outstanding fetch of the same kind makes the tick a no-op, and every
// fetch clears its in-flight flag regardless of outcome. Results are
// handed to the UI thread through the dispatcher and discarded there if
// the row was destroyed while the fetch was running.
package poll

import (
	"time"

	"github.com/duskydesk/duskycc/internal/lifecycle"
)

// Submitter is the slice of the task pool the loops use.
type Submitter interface {
	Submit(task func()) bool
}

// Scheduler arms one-shot timers. Production uses TimerScheduler;
// tests substitute a manual clock.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) lifecycle.Handle
}

// TimerScheduler schedules through time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) lifecycle.Handle {
	t := time.AfterFunc(d, fn)
	return lifecycle.StopFunc(func() { t.Stop() })
}

// Dispatcher hands a closure to the UI thread. The GUI wraps fyne.Do;
// a nil dispatcher runs the closure inline, which suits tests and the
// headless CLI.
type Dispatcher func(fn func())

func (d Dispatcher) call(fn func()) {
	if d == nil {
		fn()
		return
	}
	d(fn)
}

// loop is the shared tick skeleton. run executes on a worker and must
// clear the in-flight flag itself.
type loop struct {
	guard    *lifecycle.Guard
	kind     lifecycle.Kind
	pool     Submitter
	sched    Scheduler
	interval time.Duration
	mapped   func() bool
	run      func()
}

func (l *loop) arm() {
	if l.guard.Destroyed() {
		return
	}
	h := l.sched.Schedule(l.interval, l.tick)
	prev, ok := l.guard.Arm(l.kind, h)
	if !ok {
		// Destroyed between the check and the arm; the drain cannot
		// see this handle, so stop it here.
		h.Stop()
		return
	}
	if prev != nil {
		prev.Stop()
	}
}

func (l *loop) tick() {
	if l.guard.Destroyed() {
		return
	}
	if l.mapped != nil && !l.mapped() {
		l.arm()
		return
	}
	l.submitOnce()
	l.arm()
}

// submitOnce marks the kind in flight and hands run to the pool. A
// rejected submission clears the flag so the next tick can retry.
func (l *loop) submitOnce() {
	if !l.guard.TryBegin(l.kind) {
		return
	}
	if !l.pool.Submit(l.run) {
		l.guard.End(l.kind)
	}
}
