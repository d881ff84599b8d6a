//go:build !windows

package command

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own session with stdio discarded, so it
// survives the panel and never receives the panel's terminal signals.
func detach(cmd *exec.Cmd) {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
