package screen

// Resize changes the grid to newRows x newCols, preserving content where
// both axes overlap. On shrink of rows, top lines are evicted to history
// only if they carry non-default content (a screen full of blank rows
// shrinking doesn't pollute the scrollback with junk). On grow of columns
// the new trailing cells are spaces. Wrapped lines are never reflowed
// (explicit open question in the design notes: no reflow on resize).
// Requested sizes below 1x1 are clamped (ResizeClamp policy).
func (s *Screen) Resize(newRows, newCols int) {
	if newRows < 1 {
		newRows = 1
	}
	if newCols < 1 {
		newCols = 1
	}
	if newRows == s.rows && newCols == s.cols {
		return
	}

	if newRows < s.rows {
		evict := s.rows - newRows
		for i := 0; i < evict && s.isPrimary; i++ {
			if s.lines[i].IsBlank() {
				continue
			}
			s.history.AddLine(s.lines[i].Clone())
		}
		s.lines = s.lines[evict:]
	} else if newRows > s.rows {
		extra := make([]Line, newRows-s.rows)
		for i := range extra {
			extra[i] = NewLine(newCols, Pen{})
		}
		s.lines = append(s.lines, extra...)
	}

	for i := range s.lines {
		s.lines[i] = resizeLine(s.lines[i], newCols, s.pen)
	}

	if newCols != s.cols {
		oldStops := s.tabstops
		s.cols = newCols
		s.resetTabStops()
		for x := 0; x < len(oldStops) && x < len(s.tabstops); x++ {
			s.tabstops[x] = oldStops[x]
		}
	}

	rowDelta := newRows - s.rows
	s.rows = newRows
	s.bmargin += rowDelta
	if s.bmargin > s.rows || s.tmargin >= s.bmargin {
		s.tmargin, s.bmargin = 0, s.rows
	}

	s.clampCursor()
	s.ClearSelection()
}

func resizeLine(l Line, newCols int, pen Pen) Line {
	if len(l.Cells) == newCols {
		return l
	}
	cells := make([]Cell, newCols)
	blank := BlankCell(pen)
	for i := range cells {
		cells[i] = blank
	}
	n := len(l.Cells)
	if n > newCols {
		n = newCols
	}
	copy(cells, l.Cells[:n])
	return Line{Cells: cells, Wrapped: l.Wrapped}
}
