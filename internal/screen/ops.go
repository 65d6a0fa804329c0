package screen

// Print writes one decoded, charset-mapped rune at the cursor, applying
// delayed auto-wrap: CursorRight past the last column does not wrap by
// itself (see cursor.go); instead wrapPending is set here and consumed by
// the *next* Print call, matching scenario 2 of the end-to-end test seeds.
// combining is a non-empty slice of zero-width marks to attach to the
// preceding cell instead of advancing the cursor.
func (s *Screen) Print(r rune, width int, combining []rune) {
	if len(combining) > 0 || width == 0 {
		s.attachCombining(r, combining)
		return
	}

	if s.wrapPending {
		if s.modes&ModeAutoWrap != 0 {
			s.lines[s.cursorY].Wrapped = true
			s.cursorX = 0
			s.Index()
		}
		s.wrapPending = false
	}

	if width == 2 && s.cursorX == s.cols-1 {
		// A wide character never splits across the margin: wrap now rather
		// than truncate it into a single column.
		if s.modes&ModeAutoWrap != 0 {
			s.lines[s.cursorY].Wrapped = true
			s.cursorX = 0
			s.Index()
		} else {
			s.cursorX = s.cols - 2
		}
	}

	s.writeCellPair(r, width)

	if s.cursorX == s.cols-1 {
		s.wrapPending = true
	} else {
		s.cursorX += width
		if s.cursorX > s.cols-1 {
			s.cursorX = s.cols - 1
		}
	}
}

func (s *Screen) writeCellPair(r rune, width int) {
	y := s.cursorY
	if y < 0 || y >= len(s.lines) {
		return
	}
	line := s.lines[y].Cells
	x := s.cursorX
	if x < 0 || x >= len(line) {
		return
	}

	if s.modes&ModeInsert != 0 && x+width < len(line) {
		copy(line[x+width:], line[x:len(line)-width])
	}

	// Overwriting one half of an existing wide pair clears the other half
	// per I3: writing any cell invalidates the Leading/Trailing pairing.
	cur := line[x]
	if cur.Wide == TrailingOfDouble && x > 0 {
		line[x-1] = BlankCell(s.pen)
		line[x-1].Wide = Single
	}
	if cur.Wide == LeadingOfDouble && x+1 < len(line) {
		line[x+1] = BlankCell(s.pen)
		line[x+1].Wide = Single
	}

	pen := s.EffectivePen()
	cell := Cell{Char: r, Fore: pen.Fore, Back: pen.Back, Rendition: pen.Rendition}
	if width == 2 {
		cell.Wide = LeadingOfDouble
	}
	line[x] = cell

	if width == 2 && x+1 < len(line) {
		next := line[x+1]
		if next.Wide == LeadingOfDouble && x+2 < len(line) {
			line[x+2] = BlankCell(s.pen)
			line[x+2].Wide = Single
		}
		// Trailing cell mirrors the leading cell's attributes so the two
		// render identically regardless of which half a reader inspects.
		line[x+1] = Cell{Char: r, Fore: cell.Fore, Back: cell.Back, Rendition: cell.Rendition, Wide: TrailingOfDouble}
	}
}

func (s *Screen) attachCombining(r rune, marks []rune) {
	x, y := s.cursorX-1, s.cursorY
	if x < 0 {
		if y == 0 {
			return
		}
		y--
		x = s.cols - 1
	}
	if y < 0 || y >= len(s.lines) || x < 0 || x >= len(s.lines[y].Cells) {
		return
	}
	cell := &s.lines[y].Cells[x]
	if cell.Wide == TrailingOfDouble {
		if x == 0 {
			return
		}
		cell = &s.lines[y].Cells[x-1]
	}
	if len(marks) > 0 {
		cell.Combining = append(cell.Combining, marks...)
	} else {
		cell.Combining = append(cell.Combining, r)
	}
}

// EraseChars replaces n cells starting at the cursor with spaces in the
// current pen, without moving the cursor.
func (s *Screen) EraseChars(n int) {
	if n <= 0 || s.cursorY < 0 || s.cursorY >= len(s.lines) {
		return
	}
	line := s.lines[s.cursorY].Cells
	end := s.cursorX + n
	if end > len(line) {
		end = len(line)
	}
	blank := BlankCell(s.pen)
	for x := s.cursorX; x < end; x++ {
		line[x] = blank
	}
}

// DeleteChars shifts the line's right portion left by n, padding the
// vacated columns at the right margin with spaces; clamps silently beyond
// the right margin.
func (s *Screen) DeleteChars(n int) {
	if n <= 0 || s.cursorY < 0 || s.cursorY >= len(s.lines) {
		return
	}
	line := s.lines[s.cursorY].Cells
	if n > len(line)-s.cursorX {
		n = len(line) - s.cursorX
	}
	copy(line[s.cursorX:], line[s.cursorX+n:])
	blank := BlankCell(s.pen)
	for x := len(line) - n; x < len(line); x++ {
		if x >= s.cursorX {
			line[x] = blank
		}
	}
}

// InsertChars shifts the line right and pads at the cursor with spaces.
func (s *Screen) InsertChars(n int) {
	if n <= 0 || s.cursorY < 0 || s.cursorY >= len(s.lines) {
		return
	}
	line := s.lines[s.cursorY].Cells
	if n > len(line)-s.cursorX {
		n = len(line) - s.cursorX
	}
	copy(line[s.cursorX+n:], line[s.cursorX:len(line)-n])
	blank := BlankCell(s.pen)
	for x := s.cursorX; x < s.cursorX+n; x++ {
		line[x] = blank
	}
}

// InsertLines shifts lines within the scrolling region down by n, starting
// at the cursor row, vacating n blank lines at the cursor.
func (s *Screen) InsertLines(n int) {
	if n <= 0 || s.cursorY < s.tmargin || s.cursorY >= s.bmargin {
		return
	}
	if n > s.bmargin-s.cursorY {
		n = s.bmargin - s.cursorY
	}
	for y := s.bmargin - 1; y >= s.cursorY+n; y-- {
		s.lines[y] = s.lines[y-n]
	}
	for y := s.cursorY; y < s.cursorY+n; y++ {
		s.lines[y] = NewLine(s.cols, s.pen)
	}
}

// DeleteLines shifts lines within the scrolling region up by n, starting at
// the cursor row, filling the vacated bottom rows with blanks. Never writes
// to history -- only ScrollUp on the full region does that.
func (s *Screen) DeleteLines(n int) {
	if n <= 0 || s.cursorY < s.tmargin || s.cursorY >= s.bmargin {
		return
	}
	if n > s.bmargin-s.cursorY {
		n = s.bmargin - s.cursorY
	}
	for y := s.cursorY; y < s.bmargin-n; y++ {
		s.lines[y] = s.lines[y+n]
	}
	for y := s.bmargin - n; y < s.bmargin; y++ {
		s.lines[y] = NewLine(s.cols, s.pen)
	}
}

// EraseDisplay implements the four ED modes (0 cursor-to-end, 1
// start-to-cursor, 2 entire display; 3 additionally clears history).
func (s *Screen) EraseDisplay(mode int) {
	switch mode {
	case 0:
		s.eraseLineRange(s.cursorY, s.cursorX, s.cols)
		for y := s.cursorY + 1; y < s.rows; y++ {
			s.lines[y] = NewLine(s.cols, s.pen)
		}
	case 1:
		for y := 0; y < s.cursorY; y++ {
			s.lines[y] = NewLine(s.cols, s.pen)
		}
		s.eraseLineRange(s.cursorY, 0, s.cursorX+1)
	case 2, 3:
		for y := 0; y < s.rows; y++ {
			s.lines[y] = NewLine(s.cols, s.pen)
		}
		if mode == 3 {
			s.clearHistory()
		}
	}
}

// EraseLine implements the three EL modes against the current row.
func (s *Screen) EraseLine(mode int) {
	switch mode {
	case 0:
		s.eraseLineRange(s.cursorY, s.cursorX, s.cols)
	case 1:
		s.eraseLineRange(s.cursorY, 0, s.cursorX+1)
	case 2:
		s.eraseLineRange(s.cursorY, 0, s.cols)
	}
}

func (s *Screen) eraseLineRange(y, from, to int) {
	if y < 0 || y >= len(s.lines) {
		return
	}
	line := s.lines[y].Cells
	if from < 0 {
		from = 0
	}
	if to > len(line) {
		to = len(line)
	}
	blank := BlankCell(s.pen)
	for x := from; x < to; x++ {
		line[x] = blank
	}
}

func (s *Screen) clearHistory() {
	s.history.Reset()
	s.viewOffset = 0
}
