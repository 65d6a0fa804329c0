//go:build windows

package procgroup

import (
	"os"
	"time"
)

// KillOptions configures process termination behavior.
type KillOptions struct {
	// GracePeriod is how long to wait before forcing termination.
	// Default: 200ms
	GracePeriod time.Duration
}

// Kill attempts to terminate only the leader process on Windows. Windows
// lacks Unix-style process groups; child processes spawned by the shell may
// remain.
func Kill(leaderPID int, opts KillOptions) error {
	if leaderPID <= 0 {
		return nil
	}
	if opts.GracePeriod == 0 {
		opts.GracePeriod = 200 * time.Millisecond
	}

	proc, err := os.FindProcess(leaderPID)
	if err != nil {
		return err
	}
	_ = proc.Signal(os.Interrupt)
	if opts.GracePeriod > 0 {
		time.Sleep(opts.GracePeriod)
	}
	return proc.Kill()
}
