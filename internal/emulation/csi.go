package emulation

import (
	"fmt"

	"github.com/kterm/konsole-engine/internal/screen"
	"github.com/kterm/konsole-engine/internal/vtparser"
)

// CSI implements vtparser.Sink: the dispatch table from a final CSI byte
// (plus the private-marker and intermediate bytes) to Screen/Emulation
// operations. This mapping is the behavioral contract referenced by the
// component design's dispatch table.
func (e *Emulation) CSI(final byte, private, intermediate byte, params []int) {
	p := func(idx, def int) int { return vtparser.ParamOrDefault(params, idx, def) }

	if private == '?' {
		e.csiPrivate(final, intermediate, params)
		return
	}

	switch final {
	case '@':
		e.active.InsertChars(p(0, 1))
	case 'A':
		e.active.CursorUp(p(0, 1))
	case 'B':
		e.active.CursorDown(p(0, 1))
	case 'C':
		e.active.CursorRight(p(0, 1))
	case 'D':
		e.active.CursorLeft(p(0, 1))
	case 'E':
		for i := 0; i < p(0, 1); i++ {
			e.active.NextLine()
		}
	case 'F':
		for i := 0; i < p(0, 1); i++ {
			e.active.ReverseIndex()
			e.active.CarriageReturn()
		}
	case 'G', '`':
		e.active.SetCursorX(p(0, 1) - 1)
	case 'H', 'f':
		e.active.SetCursorXY(p(1, 1)-1, p(0, 1)-1)
	case 'I':
		for i := 0; i < p(0, 1); i++ {
			e.active.Tabulate()
		}
	case 'J':
		e.active.EraseDisplay(p(0, 0))
	case 'K':
		e.active.EraseLine(p(0, 0))
	case 'L':
		e.active.InsertLines(p(0, 1))
	case 'M':
		e.active.DeleteLines(p(0, 1))
	case 'P':
		e.active.DeleteChars(p(0, 1))
	case 'S':
		e.active.ScrollUp(p(0, 1))
	case 'T':
		e.active.ScrollDown(p(0, 1))
	case 'X':
		e.active.EraseChars(p(0, 1))
	case 'Z':
		for i := 0; i < p(0, 1); i++ {
			e.active.BackTab()
		}
	case 'd':
		e.active.SetCursorY(p(0, 1) - 1)
	case 'c':
		if private == '>' {
			e.emit([]byte("\x1b[>1;10;0c"))
		} else {
			e.emit([]byte("\x1b[?6c"))
		}
	case 'g':
		switch p(0, 0) {
		case 0:
			e.active.ChangeTabStop(false)
		case 3:
			e.active.ClearTabStops()
		}
	case 'h':
		e.setModesPublic(params, true)
	case 'l':
		e.setModesPublic(params, false)
	case 'm':
		e.executeSGR(params)
	case 'n':
		e.executeDSR(p(0, 0))
	case 'r':
		top, bot := p(0, 1)-1, p(1, e.active.Rows())
		e.active.SetScrollRegion(top, bot)
	case 's':
		e.active.SaveCursor()
	case 'u':
		e.active.RestoreCursor()
	default:
		e.Unsupported(fmt.Sprintf("CSI %s %c", vtparser.ParamString(params), final))
	}
}

func (e *Emulation) executeDSR(code int) {
	switch code {
	case 5:
		e.emit([]byte("\x1b[0n"))
	case 6:
		row, col := e.active.CursorY()+1, e.active.CursorX()+1
		e.emit([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	}
}

func (e *Emulation) setModesPublic(params []int, set bool) {
	for _, param := range params {
		var m screen.Mode
		switch param {
		case 4: // IRM insert mode
			m = screen.ModeInsert
		case 20: // LNM newline mode
			m = screen.ModeNewLine
		default:
			continue
		}
		if set {
			e.active.SetMode(m)
		} else {
			e.active.ResetMode(m)
		}
	}
}
