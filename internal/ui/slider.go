package ui

import (
	"math"
	"time"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/command"
	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/lifecycle"
)

const (
	// sliderEpsilon separates distinct snapped values; steps at or
	// below it fall back to a step of one.
	sliderEpsilon = 1e-9

	// sliderDebounce delays the commit while the thumb is moving.
	sliderDebounce = 150 * time.Millisecond
)

// sliderState carries the snap and commit bookkeeping of a slider row.
// It is touched from the UI thread only.
type sliderState struct {
	min  float64
	max  float64
	step float64

	lastSnapped float64
	hasLast     bool

	pending    float64
	hasPending bool
}

func newSliderState(min, max, step float64) *sliderState {
	if step <= sliderEpsilon {
		step = 1
	}
	if max < min {
		max = min
	}
	return &sliderState{min: min, max: max, step: step}
}

// snapOutcome describes how a raw thumb movement was absorbed.
type snapOutcome struct {
	snapped float64
	// moveThumb means the raw position differs from the snapped value
	// and the widget needs a programmatic reposition.
	moveThumb bool
	// record means the snapped value is new; a false record repeats
	// the previous snap and is dropped without committing.
	record bool
}

// change quantizes a raw slider position: round to the nearest
// multiple of the step, clamp into range, and suppress repeats of the
// last snapped value. A recorded change leaves the value pending for
// the next commit.
func (s *sliderState) change(raw float64) snapOutcome {
	snapped := math.Round(raw/s.step) * s.step
	snapped = math.Max(s.min, math.Min(snapped, s.max))

	if s.hasLast && math.Abs(snapped-s.lastSnapped) < sliderEpsilon {
		return snapOutcome{snapped: snapped}
	}
	s.lastSnapped = snapped
	s.hasLast = true
	s.pending = snapped
	s.hasPending = true
	return snapOutcome{
		snapped:   snapped,
		moveThumb: math.Abs(snapped-raw) > sliderEpsilon,
		record:    true,
	}
}

// takePending consumes the value waiting for commit.
func (s *sliderState) takePending() (float64, bool) {
	value, ok := s.pending, s.hasPending
	s.pending, s.hasPending = 0, false
	return value, ok
}

// sliderCommand resolves the command line a commit runs. The snapped
// value replaces {value} as an integer, truncated toward zero.
func sliderCommand(action *config.Action, value float64) (cmdline string, terminal bool, ok bool) {
	if action == nil || action.Kind != config.ActionExec || action.Command == "" {
		return "", false, false
	}
	cmdline = command.SubstituteValue(action.Command, value)
	return cmdline, action.Terminal, true
}

// buildSliderRow builds a row whose slider commits its exec action
// with {value} replaced by the snapped integer value. Commits are
// debounced unless the row disables it; non-terminal commands skip the
// session wrapper to keep rapid drags cheap.
func buildSliderRow(ctx *Context, item *config.Item) *Row {
	r := newRow()
	p := item.Properties
	action := item.OnChange
	state := newSliderState(p.Min, p.Max, p.Step)

	slider := widget.NewSlider(state.min, state.max)
	slider.Step = state.step
	slider.Value = math.Max(state.min, math.Min(p.Default, state.max))

	commit := func() {
		if r.guard.Destroyed() {
			return
		}
		r.guard.Disarm(lifecycle.KindDebounce)
		value, pending := state.takePending()
		if !pending {
			return
		}
		final, terminal, ok := sliderCommand(action, value)
		if !ok {
			return
		}
		if terminal {
			_ = ctx.launch(final, "Slider", true)
			return
		}
		_ = ctx.launchShell(final)
	}

	armDebounce := func() {
		if r.guard.Destroyed() {
			return
		}
		h := ctx.sched().Schedule(sliderDebounce, func() { ctx.dispatch(commit) })
		prev, ok := r.guard.Arm(lifecycle.KindDebounce, h)
		if !ok {
			h.Stop()
			return
		}
		if prev != nil {
			prev.Stop()
		}
	}

	var repositioning bool
	slider.OnChanged = func(raw float64) {
		if repositioning {
			return
		}
		out := state.change(raw)
		if !out.record {
			return
		}
		if out.moveThumb {
			repositioning = true
			slider.SetValue(out.snapped)
			repositioning = false
		}
		if !p.Debounce {
			commit()
			return
		}
		armDebounce()
	}

	icon := newRowIcon(ctx, r, p.Icon)
	left := container.NewHBox(icon, titleBlock(p))
	r.object = container.NewBorder(nil, nil, left, nil, slider)
	return r
}
