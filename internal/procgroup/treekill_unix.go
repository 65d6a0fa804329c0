//go:build !windows

package procgroup

import (
	"syscall"
	"time"
)

// KillOptions configures process group termination behavior.
type KillOptions struct {
	// GracePeriod is how long to wait for SIGTERM before sending SIGKILL.
	// Default: 200ms
	GracePeriod time.Duration
}

// Kill sends SIGTERM to a process group, waits for the grace period, then
// sends SIGKILL if processes are still running. leaderPID is the pid of the
// group leader (the shell/child Pty spawns).
func Kill(leaderPID int, opts KillOptions) error {
	if opts.GracePeriod == 0 {
		opts.GracePeriod = 200 * time.Millisecond
	}

	pgid, err := syscall.Getpgid(leaderPID)
	if err != nil {
		if err == syscall.ESRCH {
			return nil
		}
		return err
	}

	if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil {
		if err == syscall.ESRCH {
			return nil
		}
		return err
	}

	deadline := time.Now().Add(opts.GracePeriod)
	for time.Now().Before(deadline) {
		if err := syscall.Kill(-pgid, 0); err == syscall.ESRCH {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil && err != syscall.ESRCH && err != syscall.EPERM {
		return err
	}
	return nil
}
