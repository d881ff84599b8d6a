package poll

import (
	"context"
	"time"

	"github.com/duskydesk/duskycc/internal/command"
	"github.com/duskydesk/duskycc/internal/lifecycle"
	"github.com/duskydesk/duskycc/internal/logger"
)

// DefaultIconInterval paces icon refresh commands.
const DefaultIconInterval = 5 * time.Second

// CaptureFunc runs a command line and returns its trimmed stdout.
type CaptureFunc func(ctx context.Context, cmdline string, timeout time.Duration) (string, error)

// IconTarget is the slice of a row the icon loop touches. ApplyIcon is
// only ever called on the UI thread.
type IconTarget interface {
	Mapped() bool
	CurrentIcon() string
	ApplyIcon(name string)
}

// IconConfig assembles an icon refresh loop.
type IconConfig struct {
	Guard    *lifecycle.Guard
	Pool     Submitter
	Target   IconTarget
	Command  string
	Interval time.Duration
	Sched    Scheduler  // nil means real timers
	Dispatch Dispatcher // nil means inline
	Capture  CaptureFunc
}

// IconLoop periodically reruns an icon command and applies its output
// when it names a different icon. Failures never surface: a broken
// icon command means the icon simply stops changing.
type IconLoop struct {
	loop
	target   IconTarget
	command  string
	dispatch Dispatcher
	capture  CaptureFunc
}

// NewIconLoop wires the loop but does not start it.
func NewIconLoop(cfg IconConfig) *IconLoop {
	l := &IconLoop{
		target:   cfg.Target,
		command:  cfg.Command,
		dispatch: cfg.Dispatch,
		capture:  cfg.Capture,
	}
	if l.capture == nil {
		l.capture = command.Capture
	}
	l.loop = loop{
		guard:    cfg.Guard,
		kind:     lifecycle.KindIcon,
		pool:     cfg.Pool,
		sched:    cfg.Sched,
		interval: cfg.Interval,
		mapped:   cfg.Target.Mapped,
		run:      l.fetch,
	}
	if l.loop.sched == nil {
		l.loop.sched = TimerScheduler{}
	}
	if l.loop.interval <= 0 {
		l.loop.interval = DefaultIconInterval
	}
	return l
}

// Start submits an immediate first fetch and arms the periodic tick.
// A destroyed guard makes this a no-op.
func (l *IconLoop) Start() {
	l.submitOnce()
	l.arm()
}

func (l *IconLoop) fetch() {
	name, err := l.capture(context.Background(), l.command, command.CaptureShortTimeout)
	l.guard.End(lifecycle.KindIcon)
	if err != nil {
		logger.Debug("Icon command failed", "command", l.command, "error", err)
		return
	}
	if name == "" {
		return
	}
	if l.guard.Destroyed() {
		return
	}
	l.dispatch.call(func() {
		if l.guard.Destroyed() {
			return
		}
		if name == l.target.CurrentIcon() {
			return
		}
		l.target.ApplyIcon(name)
	})
}
