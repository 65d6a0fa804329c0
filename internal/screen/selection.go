package screen

// absPos is an absolute position in the displayed image: line 0 is the
// oldest history line, lines [history.Len(), history.Len()+rows) are the
// live screen. Compared lexicographically (line, then column).
type absPos struct {
	line, col int
}

func (a absPos) less(b absPos) bool {
	if a.line != b.line {
		return a.line < b.line
	}
	return a.col < b.col
}

// displayLineCount is the number of lines in the displayed image: history
// plus the live screen.
func (s *Screen) displayLineCount() int {
	return s.history.Len() + s.rows
}

// displayLine returns the Line at absolute display index i, pulling from
// history or the live grid as appropriate.
func (s *Screen) displayLine(i int) Line {
	hlen := s.history.Len()
	if i < hlen {
		cells := s.history.GetCells(i, 0, s.history.LineLen(i))
		return Line{Cells: cells}
	}
	y := i - hlen
	if y < 0 || y >= len(s.lines) {
		return Line{}
	}
	return s.lines[y]
}

func (s *Screen) toAbs(x, y int) absPos {
	return absPos{line: s.history.Len() + y, col: x}
}

// SetSelBeginXY sets the selection anchor, in displayed-image coordinates.
func (s *Screen) SetSelBeginXY(x, y int) {
	s.selActive = true
	s.selBeginAbs = flatten(s.toAbs(x, y), s.cols)
	s.selTL, s.selBR = s.selBeginAbs, s.selBeginAbs
}

// SetSelExtentXY extends the selection from the anchor to (x,y), normalizing
// so TL <= BR regardless of drag direction.
func (s *Screen) SetSelExtentXY(x, y int) {
	if !s.selActive {
		s.SetSelBeginXY(x, y)
		return
	}
	extentFlat := flatten(s.toAbs(x, y), s.cols)
	if extentFlat < s.selBeginAbs {
		s.selTL, s.selBR = extentFlat, s.selBeginAbs
	} else {
		s.selTL, s.selBR = s.selBeginAbs, extentFlat
	}
}

func flatten(p absPos, cols int) int   { return p.line*cols + p.col }
func unflatten(f, cols int) absPos     { return absPos{line: f / cols, col: f % cols} }

// ClearSelection drops the active selection (also called whenever a scroll
// would otherwise leave it pointing at reshuffled content).
func (s *Screen) ClearSelection() {
	s.selActive = false
	s.selTL, s.selBR = 0, 0
}

// HasSelection reports whether a selection is active.
func (s *Screen) HasSelection() bool { return s.selActive }

// GetSelText returns the selected text. When preserveLineBreaks is true a
// newline is emitted at the end of every selected display line except the
// last; non-wrapped lines always get one, wrapped lines are joined without
// one so that a paste reproduces the logical (unwrapped) line.
func (s *Screen) GetSelText(preserveLineBreaks bool) string {
	if !s.selActive || s.selTL >= s.selBR {
		return ""
	}
	tl := unflatten(s.selTL, s.cols)
	br := unflatten(s.selBR, s.cols)

	var out []rune
	for line := tl.line; line <= br.line; line++ {
		l := s.displayLine(line)
		from, to := 0, len(l.Cells)
		if line == tl.line {
			from = tl.col
		}
		if line == br.line {
			to = br.col
		}
		if to > len(l.Cells) {
			to = len(l.Cells)
		}
		for x := from; x < to; x++ {
			c := l.Cells[x]
			if c.Wide == TrailingOfDouble {
				continue
			}
			if c.Char == 0 {
				out = append(out, ' ')
			} else {
				out = append(out, c.Char)
				out = append(out, c.Combining...)
			}
		}
		if line != br.line && preserveLineBreaks && !l.Wrapped {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// inSelection reports whether a given display line/col falls inside
// the active selection, for cooked_image() to mark with RenditionSelected.
func (s *Screen) inSelection(line, col int) bool {
	if !s.selActive {
		return false
	}
	f := flatten(absPos{line: line, col: col}, s.cols)
	return f >= s.selTL && f < s.selBR
}
