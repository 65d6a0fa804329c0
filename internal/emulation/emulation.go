// Package emulation glues VtParser to the primary and alternate Screens: it
// owns both grids, the DEC mode flags that select between them, and the
// KeyTranslator/Pty-facing send_* operations.
package emulation

import (
	"fmt"

	"github.com/kterm/konsole-engine/internal/keytranslator"
	"github.com/kterm/konsole-engine/internal/screen"
	"github.com/kterm/konsole-engine/internal/vtparser"
	"github.com/mattn/go-runewidth"
)

// TitleKind identifies which window/icon title an OSC sequence is setting.
type TitleKind int

const (
	TitleIconAndWindow TitleKind = iota
	TitleIcon
	TitleWindow
)

// Mode is a bit set of DEC private modes Emulation tracks independently of
// Screen's own mode bits (those are per-screen; these are emulation-wide).
type Mode uint16

const (
	ModeAppScreen Mode = 1 << iota
	ModeAppCursorKeys
	ModeAppKeypad
	ModeMouse1000
	ModeAnsi
	ModeBsHack
	ModeBracketedPaste
	ModeMouseSGR
)

// Emulation owns the two Screens (primary/alternate), the VtParser, DEC
// mode flags, and produces the snapshots a renderer consumes.
type Emulation struct {
	primary   *screen.Screen
	alternate *screen.Screen
	active    *screen.Screen
	onAlt     bool

	parser *vtparser.Parser

	history screen.History

	modes      Mode
	savedModes Mode

	translator *keytranslator.Translator

	sendBytes    func([]byte)
	changeTitle  func(kind TitleKind, text string)
	logUnsupported func(string)

	rows, cols int
}

// New builds an Emulation of the given size, wiring a fresh VtParser whose
// Sink is this Emulation.
func New(rows, cols int, history screen.History, translator *keytranslator.Translator) *Emulation {
	e := &Emulation{
		primary:    screen.New(rows, cols, history),
		alternate:  screen.New(rows, cols, screen.NoopHistory{}),
		history:    history,
		translator: translator,
		modes:      ModeAnsi,
		rows:       rows, cols: cols,
	}
	e.alternate.SetPrimary(false)
	e.active = e.primary
	e.parser = vtparser.New(e)
	return e
}

// SetSendBytes installs the callback used to emit bytes toward the Pty
// (responses to queries, key/mouse reports, send_string).
func (e *Emulation) SetSendBytes(fn func([]byte)) { e.sendBytes = fn }

// SetChangeTitle installs the callback invoked when an OSC sets the window
// or icon title.
func (e *Emulation) SetChangeTitle(fn func(kind TitleKind, text string)) { e.changeTitle = fn }

// SetLogUnsupported installs the callback invoked when the parser or
// dispatcher encounters a sequence it does not recognize, per the
// log-and-ignore failure policy.
func (e *Emulation) SetLogUnsupported(fn func(string)) { e.logUnsupported = fn }

// Screen returns the currently active screen (primary or alternate).
func (e *Emulation) Screen() *screen.Screen { return e.active }

// OnReceiveBlock feeds bytes from the Pty into the parser.
func (e *Emulation) OnReceiveBlock(data []byte) {
	e.parser.Parse(data)
}

func (e *Emulation) emit(b []byte) {
	if e.sendBytes != nil {
		e.sendBytes(b)
	}
}

// SendKey consults the KeyTranslator; bytes are emitted to the Pty, a
// recognized scrollback command is applied directly to the active screen.
func (e *Emulation) SendKey(code int, mod keytranslator.Mod) {
	if e.translator == nil {
		return
	}
	state := keytranslator.State(0)
	if e.modes&ModeAppCursorKeys != 0 {
		state |= keytranslator.StateAppCursorKeys
	}
	if e.modes&ModeAppKeypad != 0 {
		state |= keytranslator.StateAppKeyPad
	}
	if e.modes&ModeAnsi != 0 {
		state |= keytranslator.StateAnsi
	}
	if e.onAlt {
		state |= keytranslator.StateAppScreen
	}
	out, cmd, ok := e.translator.Lookup(code, mod, state)
	if !ok {
		return
	}
	switch cmd {
	case keytranslator.CommandNone:
		e.emit(out)
	case keytranslator.CommandScrollLineUp:
		e.active.ScrollView(1)
	case keytranslator.CommandScrollLineDown:
		e.active.ScrollView(-1)
	case keytranslator.CommandScrollPageUp:
		e.active.ScrollView(e.active.Rows())
	case keytranslator.CommandScrollPageDown:
		e.active.ScrollView(-e.active.Rows())
	case keytranslator.CommandScrollToTop:
		e.active.ScrollViewToTop()
	case keytranslator.CommandScrollToBottom:
		e.active.ScrollViewToBottom()
	case keytranslator.CommandErase:
		e.emit([]byte{0x7f})
	}
}

// SendMouse formats and emits a mouse report for the given button/position.
// The default wire format is the Mouse1000/X10 style CSI M b Cx Cy with
// Cx/Cy biased by 32 (spec §6); when the application has also negotiated
// SGR extended mouse mode (CSI ?1006h) the SGR CSI <b;Cx;Cy M/m form is
// emitted instead, since X10's single-byte coordinates can't address
// columns/rows past 223.
func (e *Emulation) SendMouse(button, x, y int, press bool) {
	if e.modes&ModeMouse1000 == 0 {
		return
	}
	if e.modes&ModeMouseSGR != 0 {
		letter := byte('M')
		if !press {
			letter = 'm'
		}
		e.emit([]byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", button, x+1, y+1, letter)))
		return
	}
	if !press {
		button = 3 // X10 has no distinct release button code
	}
	e.emit([]byte{0x1b, '[', 'M', byte(button + 32), byte(x + 1 + 32), byte(y + 1 + 32)})
}

// SendString emits s unchanged to the Pty.
func (e *Emulation) SendString(s string) {
	e.emit([]byte(s))
}

// OnImageSizeChange resizes both screens to the new geometry.
func (e *Emulation) OnImageSizeChange(rows, cols int) {
	e.rows, e.cols = rows, cols
	e.primary.Resize(rows, cols)
	e.alternate.Resize(rows, cols)
}

// Reset performs a full terminal reset: both screens cleared, modes to
// defaults, charsets reset, pen reset. The backing history store is reset
// in place rather than discarded, so the primary screen keeps recording
// scrollback for the rest of the session instead of going permanently
// silent.
func (e *Emulation) Reset() {
	e.history.Reset()
	e.primary = screen.New(e.rows, e.cols, e.history)
	e.alternate = screen.New(e.rows, e.cols, screen.NoopHistory{})
	e.alternate.SetPrimary(false)
	e.onAlt = false
	e.active = e.primary
	e.modes = ModeAnsi
	e.parser.Reset()
}

// OnSelectionBegin forwards a selection anchor to the active screen.
func (e *Emulation) OnSelectionBegin(x, y int) { e.active.SetSelBeginXY(x, y) }

// OnSelectionExtend forwards a selection extent update to the active screen.
func (e *Emulation) OnSelectionExtend(x, y int) { e.active.SetSelExtentXY(x, y) }

// OnSelectionClear clears the active screen's selection.
func (e *Emulation) OnSelectionClear() { e.active.ClearSelection() }

func (e *Emulation) enterAltScreen() {
	if e.onAlt {
		return
	}
	e.onAlt = true
	e.active = e.alternate
}

func (e *Emulation) exitAltScreen() {
	if !e.onAlt {
		return
	}
	e.onAlt = false
	e.active = e.primary
}

// runeWidth computes the display width of r using the East-Asian-Wide
// table, collapsing control and zero-width codepoints to 0.
func runeWidth(r rune) int {
	if r < 0x20 {
		return 0
	}
	return runewidth.RuneWidth(r)
}
