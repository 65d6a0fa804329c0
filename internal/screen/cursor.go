package screen

// CursorUp moves the cursor up n rows, clamped to the active region.
// cursor_up(0) is a no-op and it never scrolls -- use ReverseIndex for that.
func (s *Screen) CursorUp(n int) {
	if n <= 0 {
		return
	}
	s.wrapPending = false
	s.cursorY -= n
	s.clampCursor()
}

// CursorDown moves the cursor down n rows, clamped to the active region.
func (s *Screen) CursorDown(n int) {
	if n <= 0 {
		return
	}
	s.wrapPending = false
	s.cursorY += n
	s.clampCursor()
}

// CursorLeft moves the cursor left n columns, clamped to column 0.
func (s *Screen) CursorLeft(n int) {
	if n <= 0 {
		return
	}
	s.wrapPending = false
	s.cursorX -= n
	s.clampCursor()
}

// CursorRight moves the cursor right n columns. Past the last column it
// stops at the last column; auto-wrap triggers only when the *next*
// printable character is written (delayed wrap), set via wrapPending in
// Print, not here.
func (s *Screen) CursorRight(n int) {
	if n <= 0 {
		return
	}
	s.wrapPending = false
	s.cursorX += n
	s.clampCursor()
}

func (s *Screen) SetCursorX(x int) {
	s.wrapPending = false
	s.cursorX = x
	s.clampCursor()
}

func (s *Screen) SetCursorY(y int) {
	s.wrapPending = false
	top := 0
	if s.modes&ModeOrigin != 0 {
		top = s.tmargin
		y += top
	}
	_ = top
	s.cursorY = y
	s.clampCursor()
}

func (s *Screen) SetCursorXY(x, y int) {
	if s.modes&ModeOrigin != 0 {
		y += s.tmargin
	}
	s.setCursorXY(x, y)
}

// Index moves the cursor down; if past bmargin, scrolls the region up by one
// and (when the region is the full screen and this is the primary screen)
// emits the top line to history.
func (s *Screen) Index() {
	s.wrapPending = false
	if s.cursorY == s.bmargin-1 {
		s.ScrollUp(1)
		return
	}
	s.cursorY++
	s.clampCursor()
}

// ReverseIndex moves the cursor up; if past tmargin, scrolls the region
// down by one.
func (s *Screen) ReverseIndex() {
	s.wrapPending = false
	if s.cursorY == s.tmargin {
		s.ScrollDown(1)
		return
	}
	s.cursorY--
	s.clampCursor()
}

// NextLine is carriage return + Index.
func (s *Screen) NextLine() {
	s.CarriageReturn()
	s.Index()
}

// NewLineOp is Index, plus carriage return iff ModeNewLine is set.
func (s *Screen) NewLineOp() {
	s.Index()
	if s.modes&ModeNewLine != 0 {
		s.CarriageReturn()
	}
}

func (s *Screen) CarriageReturn() {
	s.wrapPending = false
	s.cursorX = 0
}

// SaveCursor captures (position, pen, charset slots, GL/GR) for DECSC.
func (s *Screen) SaveCursor() {
	s.saved = SavedCursor{
		X: s.cursorX, Y: s.cursorY,
		Pen:   s.pen,
		Slots: s.slots,
		GL:    s.gl, GR: s.gr,
		Valid: true,
	}
}

// RestoreCursor restores the DECSC tuple. If nothing was ever saved it
// restores the construction defaults (home, default pen, USASCII).
func (s *Screen) RestoreCursor() {
	if !s.saved.Valid {
		s.setCursorXY(0, 0)
		s.pen = Pen{}
		s.slots = [4]Charset{}
		s.gl, s.gr = 0, 0
		return
	}
	s.cursorX, s.cursorY = s.saved.X, s.saved.Y
	s.pen = s.saved.Pen
	s.slots = s.saved.Slots
	s.gl, s.gr = s.saved.GL, s.saved.GR
	s.wrapPending = false
	s.clampCursor()
}

// SetScrollRegion sets the scrolling region, 0-based half-open [top, bot).
// An invalid range (top >= bot) is silently clamped to the full screen
// (I2). Cursor moves to home: the region's top-left when ModeOrigin is
// set, otherwise (0,0).
func (s *Screen) SetScrollRegion(top, bot int) {
	if top < 0 {
		top = 0
	}
	if bot > s.rows {
		bot = s.rows
	}
	if top >= bot {
		top, bot = 0, s.rows
	}
	s.tmargin, s.bmargin = top, bot
	if s.modes&ModeOrigin != 0 {
		s.setCursorXY(0, s.tmargin)
	} else {
		s.setCursorXY(0, 0)
	}
}

func (s *Screen) Margins() (top, bot int) { return s.tmargin, s.bmargin }
