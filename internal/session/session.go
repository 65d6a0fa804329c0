// Package session composes one Pty and one Emulation into a runnable
// terminal session: it wires the Pty's output to the Emulation's parser,
// the Emulation's responses back to the Pty, applies a Profile before
// start, and coalesces mutations through a BulkScheduler before handing
// snapshots to a renderer.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kterm/konsole-engine/internal/bulksched"
	"github.com/kterm/konsole-engine/internal/config"
	"github.com/kterm/konsole-engine/internal/emulation"
	"github.com/kterm/konsole-engine/internal/historyring"
	"github.com/kterm/konsole-engine/internal/keytranslator"
	"github.com/kterm/konsole-engine/internal/logging"
	"github.com/kterm/konsole-engine/internal/perf"
	"github.com/kterm/konsole-engine/internal/ptyio"
	"github.com/kterm/konsole-engine/internal/safego"
	"github.com/kterm/konsole-engine/internal/screen"
	"github.com/kterm/konsole-engine/internal/termerr"
)

// readBufSize bounds a single Pty.Read call.
const readBufSize = 65536

// Image is the payload handed to a renderer on each flush: the cooked
// cell grid plus the cursor position it was captured at.
type Image struct {
	Cells  []screen.Cell
	Rows   int
	Cols   int
	CurX   int
	CurY   int
}

// DoneFunc is invoked once, from a background goroutine (the Pty's exit
// callback or Session's read loop, whichever sees the end first), when the
// child process exits or the master fd errors out.
type DoneFunc func(exitStatus int, err error)

// Options configures a Session.
type Options struct {
	ID         string
	Command    string
	Profile    *config.Profile
	Translator *keytranslator.Translator
	OnImage    func(Image)
	OnDone     DoneFunc
}

// Session owns one Pty, one Emulation, and the BulkScheduler coalescing
// the two. Session > Emulation > Screen is the lock order if callers ever
// need to reach below it.
type Session struct {
	mu sync.Mutex

	id    string
	pty   *ptyio.Pty
	emu   *emulation.Emulation
	sched *bulksched.Scheduler[Image]
	ring  *historyring.Ring

	connected bool
	onDone    DoneFunc
	closeOnce sync.Once
}

// New allocates a Pty and Emulation per opts, applies the profile, and
// starts the background read loop. The Session is connected (producing
// snapshots) from the start.
func New(opts Options) (*Session, error) {
	profile := opts.Profile
	if profile == nil {
		profile = config.New()
	}
	translator := opts.Translator
	if translator == nil {
		translator = keytranslator.Fallback()
	}

	id := opts.ID
	if id == "" {
		id = uuid.New().String()
	}

	ring := historyring.New(historyring.NewMemStore(), historyring.WithMaxLines(profile.Scrollback), historyring.WithFailureHandler(func(err error) {
		logging.WithError(err, "session: history storage failed, scrollback disabled")
	}))

	rows, cols := 24, 80

	s := &Session{id: id, ring: ring, connected: true, onDone: opts.OnDone}

	emu := emulation.New(rows, cols, ring, translator)
	s.emu = emu

	p, err := ptyio.Open(ptyio.Options{
		Command: opts.Command,
		Dir:     profile.WorkingDir,
		Env:     append(append([]string{}, profile.Env...), "TERM="+profile.TermType),
		Rows:    uint16(rows),
		Cols:    uint16(cols),
		OnDone: func(status int) {
			s.handleDone(status, nil)
		},
	})
	if err != nil {
		return nil, termerr.Wrap(termerr.PtyOpenFailure, "session: open pty", err)
	}
	s.pty = p

	emu.SetSendBytes(func(b []byte) {
		if _, err := s.pty.SendBytes(b); err != nil {
			logging.WithError(err, "session: write to pty failed")
		}
	})
	emu.SetLogUnsupported(func(ctx string) {
		logging.Debug("session %s: unsupported sequence: %s", s.id, ctx)
	})

	s.sched = bulksched.New(s.snapshot, func(img Image) {
		if opts.OnImage != nil {
			opts.OnImage(img)
		}
	})

	safego.Go("session.readLoop "+id, s.readLoop)
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Emulation exposes the underlying Emulation for direct Screen access
// (e.g. a renderer reading selection state).
func (s *Session) Emulation() *emulation.Emulation {
	return s.emu
}

func (s *Session) snapshot() Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	scr := s.emu.Screen()
	return Image{
		Cells: scr.CookedImage(),
		Rows:  scr.Rows(),
		Cols:  scr.Cols(),
		CurX:  scr.CursorX(),
		CurY:  scr.CursorY(),
	}
}

func (s *Session) readLoop() {
	buf := make([]byte, readBufSize)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			perf.Count("session.bytes_read", int64(n))
			stop := perf.Time("session.on_receive_block")
			s.mu.Lock()
			s.emu.OnReceiveBlock(buf[:n])
			s.mu.Unlock()
			stop()

			nl := 0
			for _, b := range buf[:n] {
				if b == '\n' {
					nl++
				}
			}
			s.mu.Lock()
			connected := s.connected
			s.mu.Unlock()
			if connected {
				s.sched.Observe(n, nl)
			}
		}
		if err != nil {
			s.handleDone(0, err)
			return
		}
	}
}

func (s *Session) handleDone(status int, err error) {
	s.closeOnce.Do(func() {
		s.sched.Stop()
		if s.onDone != nil {
			s.onDone(status, err)
		}
	})
}

// SendKey forwards a key event to the Emulation.
func (s *Session) SendKey(code int, mod keytranslator.Mod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emu.SendKey(code, mod)
}

// SendMouse forwards a mouse event to the Emulation.
func (s *Session) SendMouse(button, x, y int, press bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emu.SendMouse(button, x, y, press)
}

// SendString forwards literal text (e.g. paste) to the Emulation.
func (s *Session) SendString(str string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emu.SendString(str)
}

// Resize updates both the Pty's window size and the Emulation's active
// Screen dimensions. A request below 1x1 is clamped to 1x1 rather than
// rejected, per the ResizeClamp policy.
func (s *Session) Resize(rows, cols int) error {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	s.mu.Lock()
	s.emu.OnImageSizeChange(rows, cols)
	s.mu.Unlock()
	return s.pty.SetSize(uint16(rows), uint16(cols))
}

// SetConnect enables or disables snapshot production without tearing the
// session down: the Emulation keeps consuming Pty bytes, but the
// BulkScheduler stops being fed while disconnected.
func (s *Session) SetConnect(connected bool) {
	s.mu.Lock()
	s.connected = connected
	s.mu.Unlock()
	if connected {
		s.sched.Flush()
	}
}

// Snapshot captures the current image and returns it to the caller
// immediately, bypassing the bulk scheduler's thresholds; OnImage is not
// invoked.
func (s *Session) Snapshot() Image {
	return s.snapshot()
}

// Close shuts the session down: stops the bulk timer, and closes the Pty,
// which signals SIGTERM then SIGKILL to the child on a grace timeout.
func (s *Session) Close() error {
	s.sched.Stop()
	return s.pty.Close()
}
