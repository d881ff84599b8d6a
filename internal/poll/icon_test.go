package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duskydesk/duskycc/internal/lifecycle"
)

func staticCapture(out string, err error) CaptureFunc {
	return func(ctx context.Context, cmdline string, timeout time.Duration) (string, error) {
		return out, err
	}
}

func newIconFixture(capture CaptureFunc) (*IconLoop, *lifecycle.Guard, *manualSched, *capturePool, *fakeIconTarget) {
	guard := &lifecycle.Guard{}
	sched := &manualSched{}
	pool := &capturePool{}
	target := &fakeIconTarget{mapped: true}
	loop := NewIconLoop(IconConfig{
		Guard:   guard,
		Pool:    pool,
		Target:  target,
		Command: "battery-icon",
		Sched:   sched,
		Capture: capture,
	})
	return loop, guard, sched, pool, target
}

func TestIconLoopAppliesChangedIcon(t *testing.T) {
	loop, guard, sched, pool, target := newIconFixture(staticCapture("battery-full-symbolic", nil))

	loop.Start()
	if len(sched.pending) != 1 {
		t.Fatalf("armed timers = %d, want 1", len(sched.pending))
	}

	sched.fire()
	if len(pool.tasks) != 1 {
		t.Fatalf("submitted tasks = %d, want 1", len(pool.tasks))
	}
	if !guard.InFlight(lifecycle.KindIcon) {
		t.Error("in-flight flag not set while fetch pending")
	}

	pool.runAll()
	if guard.InFlight(lifecycle.KindIcon) {
		t.Error("in-flight flag not cleared after fetch")
	}
	if len(target.applied) != 1 || target.applied[0] != "battery-full-symbolic" {
		t.Errorf("applied = %v", target.applied)
	}
	if len(sched.pending) != 1 {
		t.Errorf("loop did not re-arm: pending = %d", len(sched.pending))
	}
}

func TestIconLoopSkipsUnchangedIcon(t *testing.T) {
	loop, _, sched, pool, target := newIconFixture(staticCapture("battery-full-symbolic", nil))
	target.current = "battery-full-symbolic"

	loop.Start()
	sched.fire()
	pool.runAll()
	if len(target.applied) != 0 {
		t.Errorf("applied = %v, want no redundant update", target.applied)
	}
}

func TestIconLoopSilentOnFailureAndEmptyOutput(t *testing.T) {
	tests := []struct {
		name    string
		capture CaptureFunc
	}{
		{"Command error", staticCapture("", errors.New("exit 1"))},
		{"Empty output", staticCapture("", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop, guard, sched, pool, target := newIconFixture(tt.capture)
			loop.Start()
			sched.fire()
			pool.runAll()
			if len(target.applied) != 0 {
				t.Errorf("applied = %v, want none", target.applied)
			}
			if guard.InFlight(lifecycle.KindIcon) {
				t.Error("in-flight flag leaked after failed fetch")
			}
			if len(sched.pending) != 1 {
				t.Error("loop stopped on a transient failure")
			}
		})
	}
}

// The first fetch runs unconditionally at Start: rows are built before
// their page is ever shown, and they still need a real icon by then.
func TestIconLoopInitialFetchIgnoresMapping(t *testing.T) {
	loop, _, sched, pool, target := newIconFixture(staticCapture("x", nil))
	target.mapped = false

	loop.Start()
	if len(pool.tasks) != 1 {
		t.Fatalf("tasks = %d, want immediate initial fetch", len(pool.tasks))
	}
	if len(sched.pending) != 1 {
		t.Errorf("armed timers = %d, want 1", len(sched.pending))
	}
}

func TestIconLoopSkipsTickWhileUnmapped(t *testing.T) {
	loop, _, sched, pool, target := newIconFixture(staticCapture("x", nil))

	loop.Start()
	pool.runAll() // settle the initial fetch
	target.mapped = false

	sched.fire()
	if len(pool.tasks) != 0 {
		t.Errorf("submitted while unmapped: %d tasks", len(pool.tasks))
	}
	if len(sched.pending) != 1 {
		t.Error("unmapped tick must keep the timer alive")
	}
}

func TestIconLoopTickIsNoopWhileFetchInFlight(t *testing.T) {
	loop, guard, sched, pool, _ := newIconFixture(staticCapture("x", nil))

	loop.Start() // initial fetch left pending in the pool
	if len(pool.tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(pool.tasks))
	}

	sched.fire() // tick while in flight
	if len(pool.tasks) != 1 {
		t.Errorf("tasks = %d, want still 1 (reentrancy guard)", len(pool.tasks))
	}
	if !guard.InFlight(lifecycle.KindIcon) {
		t.Error("flag should remain set until the fetch completes")
	}
	if len(sched.pending) != 1 {
		t.Error("skipped tick must re-arm")
	}
}

func TestIconLoopStopsPermanentlyAfterDestroy(t *testing.T) {
	loop, guard, sched, pool, _ := newIconFixture(staticCapture("x", nil))

	loop.Start()
	pool.runAll()
	drainAndStop(guard)

	sched.fire()
	if len(pool.tasks) != 0 {
		t.Errorf("submitted after destroy: %d tasks", len(pool.tasks))
	}
	if len(sched.pending) != 0 {
		t.Errorf("re-armed after destroy: %d pending", len(sched.pending))
	}
}

func TestIconLoopStartAfterDestroyIsInert(t *testing.T) {
	loop, guard, sched, _, _ := newIconFixture(staticCapture("x", nil))
	drainAndStop(guard)

	loop.Start()
	if len(sched.pending) != 0 {
		t.Errorf("armed after destroy: %d pending", len(sched.pending))
	}
}

// A fetch completing after teardown must not touch the row. This is
// the core teardown contract: the timer drain cannot cancel running
// work, so the result is discarded on arrival instead.
func TestIconLoopResultAfterTeardownIsDiscarded(t *testing.T) {
	loop, guard, sched, pool, target := newIconFixture(staticCapture("late-icon", nil))

	loop.Start()
	sched.fire()
	if len(pool.tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(pool.tasks))
	}

	drainAndStop(guard)
	pool.runAll()

	if len(target.applied) != 0 {
		t.Errorf("destroyed row mutated: applied = %v", target.applied)
	}
	if guard.InFlight(lifecycle.KindIcon) {
		t.Error("in-flight flag leaked through teardown")
	}
}

func TestIconLoopRejectedSubmitClearsFlag(t *testing.T) {
	guard := &lifecycle.Guard{}
	sched := &manualSched{}
	target := &fakeIconTarget{mapped: true}
	loop := NewIconLoop(IconConfig{
		Guard:   guard,
		Pool:    rejectPool{},
		Target:  target,
		Command: "battery-icon",
		Sched:   sched,
		Capture: staticCapture("x", nil),
	})

	loop.Start()
	sched.fire()
	if guard.InFlight(lifecycle.KindIcon) {
		t.Error("flag must clear when the pool rejects the task")
	}
	if len(sched.pending) != 1 {
		t.Error("rejected submit must not kill the loop")
	}
}

func TestIconLoopDefaultInterval(t *testing.T) {
	loop, _, _, _, _ := newIconFixture(staticCapture("x", nil))
	if loop.interval != DefaultIconInterval {
		t.Errorf("interval = %v, want %v", loop.interval, DefaultIconInterval)
	}
}
