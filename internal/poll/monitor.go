package poll

import (
	"context"
	"strings"
	"time"

	"github.com/duskydesk/duskycc/internal/command"
	"github.com/duskydesk/duskycc/internal/lifecycle"
	"github.com/duskydesk/duskycc/internal/logger"
)

// MonitorInterval paces toggle state checks.
const MonitorInterval = 2 * time.Second

// trueTokens are the stdout values a state command may print to mean
// "on". Comparison happens on trimmed, lowercased output.
var trueTokens = map[string]struct{}{
	"enabled": {},
	"yes":     {},
	"true":    {},
	"1":       {},
	"on":      {},
	"active":  {},
	"set":     {},
	"running": {},
	"open":    {},
	"high":    {},
}

// TruthyOutput reports whether command output means an enabled state.
func TruthyOutput(out string) bool {
	_, ok := trueTokens[strings.ToLower(strings.TrimSpace(out))]
	return ok
}

// StateTarget is the slice of a toggle the monitor touches. ApplyState
// runs on the UI thread; the row applies it programmatically, without
// firing its own change action or re-persisting the value.
type StateTarget interface {
	Mapped() bool
	ApplyState(on bool)
}

// MonitorConfig assembles a state monitor loop. When StateCommand is
// blank the loop falls back to ReadKey, the row's settings-backed state
// reader (already carrying any key inversion).
type MonitorConfig struct {
	Guard        *lifecycle.Guard
	Pool         Submitter
	Target       StateTarget
	StateCommand string
	ReadKey      func() bool
	Interval     time.Duration
	Sched        Scheduler
	Dispatch     Dispatcher
	Capture      CaptureFunc
}

// MonitorLoop keeps a toggle in sync with external state.
type MonitorLoop struct {
	loop
	target   StateTarget
	cmd      string
	readKey  func() bool
	dispatch Dispatcher
	capture  CaptureFunc
}

// NewMonitorLoop wires the loop but does not start it.
func NewMonitorLoop(cfg MonitorConfig) *MonitorLoop {
	l := &MonitorLoop{
		target:   cfg.Target,
		cmd:      strings.TrimSpace(cfg.StateCommand),
		readKey:  cfg.ReadKey,
		dispatch: cfg.Dispatch,
		capture:  cfg.Capture,
	}
	if l.capture == nil {
		l.capture = command.Capture
	}
	l.loop = loop{
		guard:    cfg.Guard,
		kind:     lifecycle.KindMonitor,
		pool:     cfg.Pool,
		sched:    cfg.Sched,
		interval: cfg.Interval,
		mapped:   cfg.Target.Mapped,
		run:      l.check,
	}
	if l.loop.sched == nil {
		l.loop.sched = TimerScheduler{}
	}
	if l.loop.interval <= 0 {
		l.loop.interval = MonitorInterval
	}
	return l
}

// Start arms the first tick. A destroyed guard makes this a no-op.
func (l *MonitorLoop) Start() { l.arm() }

func (l *MonitorLoop) check() {
	state, ok := l.resolve()
	l.guard.End(lifecycle.KindMonitor)
	if !ok {
		return
	}
	if l.guard.Destroyed() {
		return
	}
	l.dispatch.call(func() {
		if l.guard.Destroyed() {
			return
		}
		l.target.ApplyState(state)
	})
}

// resolve reads the external state: command stdout against the true
// tokens, or the settings key when no command is configured.
func (l *MonitorLoop) resolve() (state, ok bool) {
	if l.cmd != "" {
		out, err := l.capture(context.Background(), l.cmd, command.CaptureShortTimeout)
		if err != nil {
			logger.Debug("State command failed", "command", l.cmd, "error", err)
			return false, false
		}
		return TruthyOutput(out), true
	}
	if l.readKey != nil {
		return l.readKey(), true
	}
	return false, false
}
