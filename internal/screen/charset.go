package screen

// decSpecialGraphics maps the 7-bit range 0x60..0x7e to the VT100 line-
// drawing glyph set designated by ESC ( 0 / ESC ) 0.
var decSpecialGraphics = map[rune]rune{
	'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌',
	'd': '␍', 'e': '␊', 'f': '°', 'g': '±',
	'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺',
	'p': '⎻', 'q': '─', 'r': '⎼', 's': '⎽',
	't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π',
	'|': '≠', '}': '£', '~': '·',
}

// DesignateCharset installs a charset into slot (0..3), per an ESC ( / ) /
// * / + designation sequence.
func (s *Screen) DesignateCharset(slot int, cs Charset) {
	if slot >= 0 && slot < 4 {
		s.slots[slot] = cs
	}
}

// SelectGL selects which slot is active as GL (SI/SO).
func (s *Screen) SelectGL(slot int) {
	if slot >= 0 && slot < 4 {
		s.gl = slot
	}
}

func (s *Screen) SelectGR(slot int) {
	if slot >= 0 && slot < 4 {
		s.gr = slot
	}
}

// MapChar remaps a 7-bit codepoint through the active GL charset; higher
// codepoints pass through unchanged (only 7-bit codepoints are remapped).
func (s *Screen) MapChar(r rune) rune {
	if r > 0x7f {
		return r
	}
	switch s.slots[s.gl] {
	case CharsetUKPound:
		if r == '#' {
			return '£'
		}
	case CharsetDECGraphics:
		if mapped, ok := decSpecialGraphics[r]; ok {
			return mapped
		}
	}
	return r
}
