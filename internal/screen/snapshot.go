package screen

// ScrollView moves the history cursor (view offset) by delta lines; 0 keeps
// the live screen fully visible, positive values look back into history.
func (s *Screen) ScrollView(delta int) {
	s.viewOffset += delta
	if s.viewOffset < 0 {
		s.viewOffset = 0
	}
	if max := s.history.Len(); s.viewOffset > max {
		s.viewOffset = max
	}
}

func (s *Screen) ScrollViewToTop() { s.viewOffset = s.history.Len() }
func (s *Screen) ScrollViewToBottom() { s.viewOffset = 0 }
func (s *Screen) IsScrolled() bool    { return s.viewOffset > 0 }
func (s *Screen) ViewOffset() int     { return s.viewOffset }

// CookedImage returns a rows x cols concatenation (row-major) whose content
// is consistent: reverse video is already baked in (effective pen was used
// at write time, see EffectivePen), selection is marked via
// RenditionSelected on copied cells, and a non-zero view offset substitutes
// history lines for the top rows.
func (s *Screen) CookedImage() []Cell {
	out := make([]Cell, 0, s.rows*s.cols)
	total := s.displayLineCount()
	// The window of display-line indices currently shown, bottom-anchored
	// unless scrolled back.
	bottom := total - s.viewOffset
	top := bottom - s.rows
	for row := 0; row < s.rows; row++ {
		idx := top + row
		var line Line
		if idx >= 0 && idx < total {
			line = s.displayLine(idx)
		} else {
			line = NewLine(s.cols, Pen{})
		}
		for col := 0; col < s.cols; col++ {
			var c Cell
			if col < len(line.Cells) {
				c = line.Cells[col]
			} else {
				c = BlankCell(Pen{})
			}
			if s.inSelection(idx, col) {
				c.Rendition |= RenditionSelected
			}
			out = append(out, c)
		}
	}
	return out
}
