//go:build !windows

package gitrun

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr starts the child in its own process group so terminate can
// kill git together with any helpers it spawned (ssh, credential helpers).
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate kills the child's whole process group, falling back to killing
// just the process if the group kill fails.
func terminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
		_ = cmd.Process.Kill()
	}
}
