//go:build windows

package command

import "os/exec"

// detach discards stdio; session separation is a Unix concept.
func detach(cmd *exec.Cmd) {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
}
