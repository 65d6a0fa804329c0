package emulation

import "github.com/kterm/konsole-engine/internal/screen"

// executeSGR applies a sequence of SGR parameters to the active screen's
// pen, including the 256-color and truecolor extended forms
// (38;5;N / 48;5;N / 38;2;R;G;B / 48;2;R;G;B).
func (e *Emulation) executeSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			e.active.SetDefaultRendition()
			e.active.ResetForeColor()
			e.active.ResetBackColor()
		case p == 1:
			e.active.SetRendition(screen.RenditionBold)
		case p == 2:
			e.active.SetRendition(screen.RenditionFaint)
		case p == 3:
			e.active.SetRendition(screen.RenditionItalic)
		case p == 4:
			e.active.SetRendition(screen.RenditionUnderline)
		case p == 5 || p == 6:
			e.active.SetRendition(screen.RenditionBlink)
		case p == 7:
			e.active.SetRendition(screen.RenditionReverse)
		case p == 8:
			e.active.SetRendition(screen.RenditionInvisible)
		case p == 9:
			e.active.SetRendition(screen.RenditionStrikeout)
		case p == 21:
			e.active.ResetRendition(screen.RenditionBold)
		case p == 22:
			e.active.ResetRendition(screen.RenditionBold | screen.RenditionFaint)
		case p == 23:
			e.active.ResetRendition(screen.RenditionItalic)
		case p == 24:
			e.active.ResetRendition(screen.RenditionUnderline)
		case p == 25:
			e.active.ResetRendition(screen.RenditionBlink)
		case p == 27:
			e.active.ResetRendition(screen.RenditionReverse)
		case p == 28:
			e.active.ResetRendition(screen.RenditionInvisible)
		case p == 29:
			e.active.ResetRendition(screen.RenditionStrikeout)
		case p >= 30 && p <= 37:
			e.active.SetForeColor(screen.Color{Kind: screen.ColorIndexed, Value: uint32(p - 30)})
		case p == 38:
			consumed := e.setExtendedColor(params[i:], true)
			i += consumed - 1
		case p == 39:
			e.active.ResetForeColor()
		case p >= 40 && p <= 47:
			e.active.SetBackColor(screen.Color{Kind: screen.ColorIndexed, Value: uint32(p - 40)})
		case p == 48:
			consumed := e.setExtendedColor(params[i:], false)
			i += consumed - 1
		case p == 49:
			e.active.ResetBackColor()
		case p >= 90 && p <= 97:
			e.active.SetForeColor(screen.Color{Kind: screen.ColorIndexed, Value: uint32(p-90) + 8})
		case p >= 100 && p <= 107:
			e.active.SetBackColor(screen.Color{Kind: screen.ColorIndexed, Value: uint32(p-100) + 8})
		}
	}
}

// setExtendedColor parses the `38;5;N` or `38;2;R;G;B` forms (or the 48
// background equivalents) starting at rest[0] == 38 or 48. Returns the
// number of parameters consumed, including the leading 38/48.
func (e *Emulation) setExtendedColor(rest []int, foreground bool) int {
	if len(rest) < 2 {
		return len(rest)
	}
	switch rest[1] {
	case 5:
		if len(rest) < 3 {
			return len(rest)
		}
		c := screen.Color{Kind: screen.ColorIndexed, Value: uint32(rest[2])}
		if foreground {
			e.active.SetForeColor(c)
		} else {
			e.active.SetBackColor(c)
		}
		return 3
	case 2:
		if len(rest) < 5 {
			return len(rest)
		}
		r, g, b := uint32(rest[2])&0xff, uint32(rest[3])&0xff, uint32(rest[4])&0xff
		c := screen.Color{Kind: screen.ColorRGB, Value: r<<16 | g<<8 | b}
		if foreground {
			e.active.SetForeColor(c)
		} else {
			e.active.SetBackColor(c)
		}
		return 5
	}
	return 2
}
