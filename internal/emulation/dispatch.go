package emulation

import (
	"fmt"
	"strings"

	"github.com/kterm/konsole-engine/internal/screen"
)

// Print implements vtparser.Sink: map the rune through the active screen's
// charset, compute its display width, and write it.
func (e *Emulation) Print(r rune, combining []rune) {
	if len(combining) > 0 {
		e.active.Print(0, 0, combining)
		return
	}
	mapped := e.active.MapChar(r)
	e.active.Print(mapped, runeWidth(mapped), nil)
}

// C0 implements vtparser.Sink for the single-byte controls.
func (e *Emulation) C0(b byte) {
	switch b {
	case 0x07: // BEL
		// No bell signal is wired; a full implementation would notify the
		// session layer here.
	case 0x08: // BS
		e.active.CursorLeft(1)
	case 0x09: // HT
		e.active.Tabulate()
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		e.active.NewLineOp()
	case 0x0d: // CR
		e.active.CarriageReturn()
	case 0x0e: // SO
		e.active.SelectGL(1)
	case 0x0f: // SI
		e.active.SelectGL(0)
	}
}

// Escape implements vtparser.Sink for non-CSI, non-OSC, non-charset
// ESC-final sequences.
func (e *Emulation) Escape(final byte) {
	switch final {
	case '7': // DECSC
		e.active.SaveCursor()
	case '8': // DECRC
		e.active.RestoreCursor()
	case 'D': // IND
		e.active.Index()
	case 'M': // RI
		e.active.ReverseIndex()
	case 'E': // NEL
		e.active.NextLine()
	case 'c': // RIS
		e.Reset()
	case '=': // DECKPAM
		e.modes |= ModeAppKeypad
	case '>': // DECKPNM
		e.modes &^= ModeAppKeypad
	default:
		e.Unsupported(fmt.Sprintf("ESC %c", final))
	}
}

// DesignateCharset implements vtparser.Sink for ESC ( / ) / * / + <final>.
func (e *Emulation) DesignateCharset(intro, final byte) {
	slot := 0
	switch intro {
	case '(':
		slot = 0
	case ')':
		slot = 1
	case '*':
		slot = 2
	case '+':
		slot = 3
	}
	cs := screen.CharsetUSASCII
	switch final {
	case '0':
		cs = screen.CharsetDECGraphics
	case 'A':
		cs = screen.CharsetUKPound
	case 'B':
		cs = screen.CharsetUSASCII
	default:
		e.Unsupported(fmt.Sprintf("charset %c%c", intro, final))
		return
	}
	e.active.DesignateCharset(slot, cs)
}

// OSC implements vtparser.Sink: dispatches window/icon title and a handful
// of xterm OSC extensions by numeric Ps prefix.
func (e *Emulation) OSC(payload string) {
	semi := strings.IndexByte(payload, ';')
	if semi < 0 {
		e.Unsupported("OSC " + payload)
		return
	}
	ps, text := payload[:semi], payload[semi+1:]
	switch ps {
	case "0":
		e.emitTitle(TitleIconAndWindow, text)
	case "1":
		e.emitTitle(TitleIcon, text)
	case "2":
		e.emitTitle(TitleWindow, text)
	default:
		e.Unsupported("OSC " + payload)
	}
}

func (e *Emulation) emitTitle(kind TitleKind, text string) {
	if e.changeTitle != nil {
		e.changeTitle(kind, text)
	}
}

// Unsupported implements vtparser.Sink: an unrecognized sequence is
// reported through the installed logger callback and otherwise ignored,
// per the log-and-ignore failure policy.
func (e *Emulation) Unsupported(context string) {
	if e.logUnsupported != nil {
		e.logUnsupported(context)
	}
}
