package poll

import (
	"context"
	"strings"
	"time"

	"github.com/duskydesk/duskycc/internal/apperrors"
	"github.com/duskydesk/duskycc/internal/lifecycle"
)

// Display text for the three failure shapes of a value fetch.
const (
	ValueUnavailable = "N/A"
	ValueTimeout     = "Timeout"
	ValueError       = "Error"
)

// ResolveFunc produces a label's text from its configured source.
type ResolveFunc func(ctx context.Context) (string, error)

// ValueTarget is the slice of a label row the value loop touches.
type ValueTarget interface {
	Mapped() bool
	ApplyValue(text string)
}

// ValueConfig assembles a value loop. Interval 0 means load once and
// never refresh.
type ValueConfig struct {
	Guard    *lifecycle.Guard
	Pool     Submitter
	Target   ValueTarget
	Resolve  ResolveFunc
	Interval time.Duration
	Sched    Scheduler
	Dispatch Dispatcher
}

// ValueLoop loads a label's text in the background. Unlike icon and
// state polling, failures are user-visible: the label shows Timeout or
// Error instead of stale text.
type ValueLoop struct {
	loop
	target   ValueTarget
	resolve  ResolveFunc
	dispatch Dispatcher
	periodic bool
}

// NewValueLoop wires the loop but does not start it.
func NewValueLoop(cfg ValueConfig) *ValueLoop {
	l := &ValueLoop{
		target:   cfg.Target,
		resolve:  cfg.Resolve,
		dispatch: cfg.Dispatch,
		periodic: cfg.Interval > 0,
	}
	l.loop = loop{
		guard:    cfg.Guard,
		kind:     lifecycle.KindValue,
		pool:     cfg.Pool,
		sched:    cfg.Sched,
		interval: cfg.Interval,
		mapped:   cfg.Target.Mapped,
		run:      l.load,
	}
	if l.loop.sched == nil {
		l.loop.sched = TimerScheduler{}
	}
	return l
}

// Start fetches immediately, then arms the refresh timer when an
// interval is configured. The immediate fetch skips the mapped check:
// rows load their value while still being laid out.
func (l *ValueLoop) Start() {
	l.submitOnce()
	if l.periodic {
		l.arm()
	}
}

// RefreshNow forces one fetch outside the schedule.
func (l *ValueLoop) RefreshNow() { l.submitOnce() }

func (l *ValueLoop) load() {
	text, err := l.resolve(context.Background())
	l.guard.End(lifecycle.KindValue)
	switch {
	case apperrors.IsTimeout(err):
		text = ValueTimeout
	case err != nil:
		text = ValueError
	case strings.TrimSpace(text) == "":
		text = ValueUnavailable
	}
	if l.guard.Destroyed() {
		return
	}
	l.dispatch.call(func() {
		if l.guard.Destroyed() {
			return
		}
		l.target.ApplyValue(text)
	})
}
