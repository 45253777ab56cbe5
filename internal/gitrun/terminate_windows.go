//go:build windows

package gitrun

import (
	"os/exec"
	"strconv"
)

// setSysProcAttr is a no-op on Windows; taskkill handles the tree.
func setSysProcAttr(_ *exec.Cmd) {}

// terminate kills the child's whole process tree. git may have spawned
// credential managers or ssh helpers that would otherwise linger.
func terminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	kill := exec.Command("taskkill", "/PID", strconv.Itoa(cmd.Process.Pid), "/T", "/F")
	_ = kill.Run()
}
