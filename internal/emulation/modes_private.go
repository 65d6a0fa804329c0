package emulation

import (
	"fmt"

	"github.com/kterm/konsole-engine/internal/screen"
)

// csiPrivate handles CSI ? Ps h/l (DEC private mode set/reset) and
// CSI ? Ps $ p (DECRQM, mode query).
func (e *Emulation) csiPrivate(final, intermediate byte, params []int) {
	switch {
	case final == 'h':
		e.setPrivateModes(params, true)
	case final == 'l':
		e.setPrivateModes(params, false)
	case final == 'p' && intermediate == '$':
		e.executeDECRQM(params)
	default:
		e.Unsupported(fmt.Sprintf("CSI ?%v %c", params, final))
	}
}

func (e *Emulation) executeDECRQM(params []int) {
	for _, param := range params {
		status := 0 // not recognized
		if param == 2026 {
			status = 2 // permanently reset: no separate sync-output staging implemented
		}
		e.emit([]byte(fmt.Sprintf("\x1b[?%d;%d$y", param, status)))
	}
}

func (e *Emulation) setPrivateModes(params []int, set bool) {
	for _, param := range params {
		switch param {
		case 1: // DECCKM cursor keys
			e.setEmulationMode(ModeAppCursorKeys, set)
		case 6: // DECOM origin mode
			if set {
				e.active.SetMode(screen.ModeOrigin)
			} else {
				e.active.ResetMode(screen.ModeOrigin)
			}
		case 7: // DECAWM autowrap
			if set {
				e.active.SetMode(screen.ModeAutoWrap)
			} else {
				e.active.ResetMode(screen.ModeAutoWrap)
			}
		case 12: // blinking cursor, cosmetic only
		case 25: // DECTCEM cursor visibility
			if set {
				e.active.SetMode(screen.ModeCursorVisible)
			} else {
				e.active.ResetMode(screen.ModeCursorVisible)
			}
		case 66: // DECNKM application keypad (xterm alias of ESC = / ESC >)
			e.setEmulationMode(ModeAppKeypad, set)
		case 1000, 1002, 1003: // mouse reporting
			e.setEmulationMode(ModeMouse1000, set)
		case 1006: // SGR extended mouse coordinate encoding
			e.setEmulationMode(ModeMouseSGR, set)
		case 1049, 1047, 47: // alternate screen buffer
			if set {
				e.enterAltScreen()
			} else {
				e.exitAltScreen()
			}
			e.setEmulationMode(ModeAppScreen, set)
		case 2004: // bracketed paste
			e.setEmulationMode(ModeBracketedPaste, set)
		case 2026: // synchronized output: no separate buffering stage is
			// implemented; snapshot delivery already guarantees I6.
		}
	}
}

func (e *Emulation) setEmulationMode(m Mode, set bool) {
	if set {
		e.modes |= m
	} else {
		e.modes &^= m
	}
}

// SetMode applies a DEC private mode by number, as Emulation's public
// set_mode contract (for callers that already parsed Ps).
func (e *Emulation) SetMode(param int) { e.setPrivateModes([]int{param}, true) }

// ResetMode is the set_mode counterpart for clearing a DEC private mode.
func (e *Emulation) ResetMode(param int) { e.setPrivateModes([]int{param}, false) }

// SaveMode remembers whether emulation-level mode bit m is set, for a later
// RestoreMode. The CSI ? dispatcher does not route CSI ? Ps s / r here;
// callers invoke the pair directly.
func (e *Emulation) SaveMode(m Mode) {
	if e.modes&m != 0 {
		e.savedModes |= m
	} else {
		e.savedModes &^= m
	}
}

// RestoreMode restores emulation-level mode bit m from the last SaveMode.
func (e *Emulation) RestoreMode(m Mode) {
	if e.savedModes&m != 0 {
		e.modes |= m
	} else {
		e.modes &^= m
	}
}
