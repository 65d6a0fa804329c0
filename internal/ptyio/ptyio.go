// Package ptyio spawns a child process attached to a pseudoterminal and
// exposes bidirectional byte I/O, resize, and exit notification.
package ptyio

import (
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"

	"github.com/kterm/konsole-engine/internal/procgroup"
	"github.com/kterm/konsole-engine/internal/termerr"
)

// closeTimeout is how long Close waits for the child to exit after SIGTERM
// before escalating to SIGKILL.
const closeTimeout = 5 * time.Second

// DoneFunc is invoked once, from a background goroutine, when the child
// exits -- the `done(exit_status)` signal.
type DoneFunc func(exitStatus int)

// Pty wraps a pseudoterminal pair and its attached child command.
type Pty struct {
	mu      sync.Mutex
	ptyFile *os.File
	cmd     *exec.Cmd
	closed  bool
	exited  chan struct{}

	onDone DoneFunc
}

// Options configures Open.
type Options struct {
	Command string
	Dir     string
	Env     []string
	Rows    uint16
	Cols    uint16
	OnDone  DoneFunc
}

// Open allocates a pseudoterminal pair and spawns Options.Command as its
// child, with the initial window size applied atomically if given.
func Open(opts Options) (*Pty, error) {
	cmd := exec.Command("sh", "-c", opts.Command)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.SysProcAttr = &syscall.SysProcAttr{}

	var (
		ptmx *os.File
		err  error
	)
	if opts.Rows > 0 && opts.Cols > 0 {
		ptmx, err = pty.StartWithSize(cmd, &pty.Winsize{Rows: opts.Rows, Cols: opts.Cols})
	} else {
		ptmx, err = pty.Start(cmd)
	}
	if err != nil {
		return nil, termerr.Wrap(termerr.PtySpawnFailure, "ptyio: spawn child", err)
	}

	p := &Pty{ptyFile: ptmx, cmd: cmd, onDone: opts.OnDone, exited: make(chan struct{})}
	go p.reap()
	return p, nil
}

// reap waits for the child and emits the done signal; this is the Go
// equivalent of a SIGCHLD handler consulting a pid registry -- os/exec's
// Wait already blocks until exactly this process exits, so no process-wide
// registry is needed. cmd.Wait must only ever be called once, so Close
// observes exit through the exited channel rather than calling Wait itself.
func (p *Pty) reap() {
	err := p.cmd.Wait()
	close(p.exited)
	status := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			status = exitErr.ExitCode()
		} else {
			status = -1
		}
	}
	if p.onDone != nil {
		p.onDone(status)
	}
}

// SetSize issues the controlling-terminal resize ioctl; safe to call before
// the pty file is fully established or after Close (becomes a no-op).
func (p *Pty) SetSize(rows, cols uint16) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.ptyFile == nil {
		return nil
	}
	return pty.Setsize(p.ptyFile, &pty.Winsize{Rows: rows, Cols: cols})
}

// SendBytes writes buf to the pty master unbuffered.
func (p *Pty) SendBytes(buf []byte) (int, error) {
	p.mu.Lock()
	closed := p.closed
	f := p.ptyFile
	p.mu.Unlock()
	if closed || f == nil {
		return 0, io.ErrClosedPipe
	}
	return f.Write(buf)
}

// Read reads available output bytes. It does not hold the lock across the
// blocking syscall, so Close can proceed concurrently.
func (p *Pty) Read(buf []byte) (int, error) {
	p.mu.Lock()
	closed := p.closed
	f := p.ptyFile
	p.mu.Unlock()
	if closed || f == nil {
		return 0, io.EOF
	}
	return f.Read(buf)
}

// Close terminates the child's process group and releases the pty file.
// Safe to call more than once.
func (p *Pty) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	f := p.ptyFile
	cmd := p.cmd
	exited := p.exited
	p.ptyFile = nil
	p.mu.Unlock()

	if f != nil {
		_ = f.Close()
	}

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	leaderPID := cmd.Process.Pid
	_ = procgroup.Kill(leaderPID, procgroup.KillOptions{})

	select {
	case <-exited:
	case <-time.After(closeTimeout):
		_ = procgroup.ForceKill(leaderPID)
		<-exited
	}
	return nil
}

// Running reports whether the child process is still alive.
func (p *Pty) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.cmd == nil {
		return false
	}
	return p.cmd.ProcessState == nil
}

// File returns the underlying pty master, or nil once closed.
func (p *Pty) File() *os.File {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	return p.ptyFile
}
