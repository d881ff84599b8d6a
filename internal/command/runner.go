// Package command launches user-configured command lines through the
// uwsm session wrapper and captures output for value-producing rows.
//
// Launches are fire-and-forget: the child runs in its own session with
// all stdio discarded, and only the launch itself can fail. Captures run
// through the shell with a hard timeout and return trimmed stdout.
package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/duskydesk/duskycc/internal/apperrors"
	"github.com/duskydesk/duskycc/internal/logger"
)

const (
	launcherBin = "uwsm-app"
	terminalBin = "kitty"

	// CaptureShortTimeout bounds recurring poll captures (icon and state
	// ticks), which must stay cheap.
	CaptureShortTimeout = 2 * time.Second
	// CaptureLongTimeout bounds one-shot label value captures.
	CaptureLongTimeout = 5 * time.Second
)

// startProcess is swapped out in tests to inspect the argv without
// spawning anything.
var startProcess = func(cmd *exec.Cmd) error { return cmd.Start() }

// Expand substitutes environment variables, resolves a leading ~, and
// trims the command line. Unset variables are left as written so the
// shell fallback still sees them.
func Expand(raw string) string {
	s := os.Expand(raw, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return "$" + name
	})
	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = home + s[1:]
		}
	}
	return strings.TrimSpace(s)
}

// Argv builds the full launcher argument vector for a command line.
//
// Plain commands are token-split and handed to the wrapper directly;
// lines the splitter cannot parse (unbalanced quotes, etc.) fall back to
// a shell invocation so pipes and redirects keep working. Terminal
// commands are wrapped in a held terminal window carrying the row title.
func Argv(cmdline, title string, inTerminal bool) ([]string, error) {
	expanded := Expand(cmdline)
	if expanded == "" {
		return nil, errors.New("empty command")
	}
	if inTerminal {
		return []string{
			launcherBin, "--",
			terminalBin,
			"--title", title,
			"--hold",
			"sh", "-c", expanded,
		}, nil
	}
	parts, err := shlex.Split(expanded)
	if err != nil || len(parts) == 0 {
		parts = []string{"sh", "-c", expanded}
	}
	return append([]string{launcherBin, "--"}, parts...), nil
}

// Launch starts cmdline detached from the panel process. It reports only
// whether the process was started; exit status and output are never
// collected.
func Launch(cmdline, title string, inTerminal bool) error {
	argv, err := Argv(cmdline, title, inTerminal)
	if err != nil {
		return apperrors.Command(err)
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	detach(cmd)
	if err := startProcess(cmd); err != nil {
		logger.Warn("Failed to launch command", "title", title, "error", err)
		return apperrors.Command(fmt.Errorf("launch %q: %w", title, err))
	}
	logger.Debug("Launched command", "title", title, "argv", argv)
	if cmd.Process != nil {
		// Reap the child on exit so it never lingers as a zombie.
		go func() { _ = cmd.Wait() }()
	}
	return nil
}

// LaunchShell starts cmdline through the shell directly, skipping the
// session wrapper. High-frequency callers such as slider commits use
// this to avoid the wrapper's per-launch overhead.
func LaunchShell(cmdline string) error {
	expanded := Expand(cmdline)
	if expanded == "" {
		return apperrors.Command(errors.New("empty command"))
	}
	cmd := exec.Command("sh", "-c", expanded)
	detach(cmd)
	if err := startProcess(cmd); err != nil {
		logger.Warn("Failed to launch shell command", "error", err)
		return apperrors.Command(fmt.Errorf("launch shell: %w", err))
	}
	if cmd.Process != nil {
		go func() { _ = cmd.Wait() }()
	}
	return nil
}

// Capture runs cmdline through the shell and returns its trimmed stdout.
// The exit status is deliberately ignored: probe commands routinely exit
// non-zero while still printing a usable value, so only a deadline hit
// (timeout-kind error) or a failure to run the shell at all counts as an
// error. The context bounds the whole run in addition to timeout.
func Capture(ctx context.Context, cmdline string, timeout time.Duration) (string, error) {
	expanded := Expand(cmdline)
	if expanded == "" {
		return "", apperrors.Command(errors.New("empty command"))
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "sh", "-c", expanded).Output()
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return "", apperrors.Timeout(ctxErr)
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return "", apperrors.Command(err)
	}
	return strings.TrimSpace(string(out)), nil
}

// SubstituteValue replaces every {value} placeholder with the integer
// rendering of value, matching what slider commands expect.
func SubstituteValue(template string, value float64) string {
	return strings.ReplaceAll(template, "{value}", strconv.Itoa(int(value)))
}
