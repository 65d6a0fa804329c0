//go:build !windows

package procgroup

import "syscall"

// ForceKill sends SIGKILL directly to pid, bypassing the grace period Kill
// grants -- the last-resort escalation when a child ignores SIGTERM and the
// caller's own close timeout has already elapsed.
func ForceKill(pid int) error {
	err := syscall.Kill(pid, syscall.SIGKILL)
	if err == syscall.ESRCH {
		return nil
	}
	return err
}
