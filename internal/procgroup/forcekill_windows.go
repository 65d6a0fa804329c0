//go:build windows

package procgroup

import "os"

// ForceKill terminates pid directly, bypassing any grace period.
func ForceKill(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	return proc.Kill()
}
