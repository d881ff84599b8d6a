package ui

import (
	"context"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/google/shlex"

	"github.com/duskydesk/duskycc/internal/command"
	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/poll"
	"github.com/duskydesk/duskycc/internal/sysinfo"
)

// valuePlaceholder shows in a label row until the first fetch lands.
const valuePlaceholder = "..."

// buildLabelRow builds a row whose trailing label shows a fetched
// value. Interval zero loads the value once; a positive interval keeps
// refreshing it.
func buildLabelRow(ctx *Context, item *config.Item) *Row {
	r := newRow()
	p := item.Properties

	value := widget.NewLabel(valuePlaceholder)
	value.Alignment = fyne.TextAlignTrailing
	value.Truncation = fyne.TextTruncateEllipsis
	value.Importance = widget.LowImportance

	icon := newRowIcon(ctx, r, p.Icon)
	left := container.NewHBox(icon, titleBlock(p))
	r.object = container.NewBorder(nil, nil, left, nil, value)

	view := &valueView{
		visible: ctx.visible(),
		apply: func(text string) {
			if text == value.Text {
				return
			}
			value.Importance = widget.MediumImportance
			value.SetText(text)
		},
	}
	poll.NewValueLoop(poll.ValueConfig{
		Guard:    &r.guard,
		Pool:     ctx.Pool,
		Target:   view,
		Resolve:  valueResolver(ctx, item.Value),
		Interval: labelInterval(p),
		Sched:    ctx.Sched,
		Dispatch: ctx.Dispatch,
	}).Start()
	return r
}

func labelInterval(p config.Properties) time.Duration {
	if p.Interval > 0 {
		return time.Duration(p.Interval) * time.Second
	}
	return 0
}

// valueResolver compiles a label's value source into a fetch function.
// The loop turns a blank result into the unavailable marker and maps
// errors by kind, so resolvers only distinguish timeout from failure.
func valueResolver(ctx *Context, v *config.Value) poll.ResolveFunc {
	capture := ctx.Capture
	if capture == nil {
		capture = command.Capture
	}
	if v == nil {
		return func(context.Context) (string, error) { return poll.ValueUnavailable, nil }
	}
	switch v.Kind {
	case config.ValueStatic:
		text := v.Text
		return func(context.Context) (string, error) { return text, nil }
	case config.ValueExec:
		cmdline := v.Command
		return func(c context.Context) (string, error) { return execValue(c, capture, cmdline) }
	case config.ValueFile:
		path := v.Path
		return func(context.Context) (string, error) { return fileValue(path), nil }
	case config.ValueSystem:
		key := v.Key
		return func(c context.Context) (string, error) { return sysinfo.Value(c, key), nil }
	}
	return func(context.Context) (string, error) { return poll.ValueUnavailable, nil }
}

// execValue captures a value command's stdout. A plain `cat FILE` is
// read directly instead of spawning a shell.
func execValue(ctx context.Context, capture poll.CaptureFunc, cmdline string) (string, error) {
	cmdline = strings.TrimSpace(cmdline)
	if cmdline == "" {
		return "", nil
	}
	if strings.HasPrefix(cmdline, "cat ") {
		if parts, err := shlex.Split(cmdline); err == nil && len(parts) == 2 {
			return fileValue(parts[1]), nil
		}
	}
	return capture(ctx, cmdline, command.CaptureLongTimeout)
}

// fileValue reads a file's trimmed contents. Missing or unreadable
// files read as blank, which the loop renders as unavailable.
func fileValue(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(command.Expand(path))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
