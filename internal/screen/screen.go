package screen

// Charset identifies one of the designatable character sets for a G0..G3
// slot.
type Charset byte

const (
	CharsetUSASCII Charset = iota
	CharsetUKPound
	CharsetDECGraphics
)

// SavedCursor is the (position, pen, charset, graphic/pound flags) tuple
// captured by DECSC and restored by DECRC.
type SavedCursor struct {
	X, Y     int
	Pen      Pen
	Slots    [4]Charset
	GL, GR   int
	Valid    bool
}

// Screen is a rectangular grid of rows x cols cells plus the cursor,
// margins, rendition, tab stops, and selection state that the VT protocol
// addresses.
type Screen struct {
	rows, cols int
	lines      []Line

	cursorX, cursorY int
	wrapPending      bool

	tmargin, bmargin int // scrolling region, half-open [tmargin, bmargin)

	tabstops []bool

	pen Pen

	modes      Mode
	savedModes Mode

	slots    [4]Charset
	gl, gr   int
	saved    SavedCursor

	history History

	// isPrimary gates scrollback capture: only the primary screen's
	// evicted lines are appended to history.
	isPrimary bool

	selActive     bool
	selBeginAbs   int // absolute offset (history+screen), anchor
	selTL, selBR  int // normalized [TL, BR), TL<=BR
	selRectangular bool

	// viewOffset is the history cursor: number of lines scrolled back from
	// the bottom. 0 means the live screen is fully visible.
	viewOffset int
}

// New constructs a Screen of the given size with default pen/modes and tab
// stops at every 8th column, backed by history for scrolled-off lines.
// A NoopHistory{} may be passed when scrollback is not wanted (e.g. the
// alternate screen never writes to history per the data-model lifecycle
// rule).
func New(rows, cols int, history History) *Screen {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	s := &Screen{
		rows: rows, cols: cols,
		bmargin: rows,
		history:   history,
		isPrimary: true,
		modes:     ModeAutoWrap | ModeCursorVisible,
	}
	s.lines = make([]Line, rows)
	for i := range s.lines {
		s.lines[i] = NewLine(cols, s.pen)
	}
	s.resetTabStops()
	return s
}

// SetPrimary marks whether this Screen is the primary (scrollback-writing)
// screen; Emulation sets this false for the alternate screen.
func (s *Screen) SetPrimary(primary bool) { s.isPrimary = primary }
func (s *Screen) IsPrimary() bool         { return s.isPrimary }

func (s *Screen) Rows() int { return s.rows }
func (s *Screen) Cols() int { return s.cols }

func (s *Screen) CursorX() int { return s.cursorX }
func (s *Screen) CursorY() int { return s.cursorY }

// Pen returns the current pen (attributes applied to newly written cells).
func (s *Screen) Pen() Pen { return s.pen }

// EffectivePen returns the pen actually used to paint new cells: screen-wide
// reverse video (ModeReverse) swaps foreground and background. This mirrors
// the original TEScreen's derive-don't-store effective color design — the
// swap is computed on demand, never persisted onto the pen.
func (s *Screen) EffectivePen() Pen {
	p := s.pen
	if s.modes&ModeReverse != 0 {
		p.Fore, p.Back = p.Back, p.Fore
	}
	return p
}

func (s *Screen) clampCursor() {
	if s.cursorX < 0 {
		s.cursorX = 0
	}
	if s.cursorX >= s.cols {
		s.cursorX = s.cols - 1
	}
	top, bot := 0, s.rows-1
	if s.modes&ModeOrigin != 0 {
		top, bot = s.tmargin, s.bmargin-1
	}
	if s.cursorY < top {
		s.cursorY = top
	}
	if s.cursorY > bot {
		s.cursorY = bot
	}
}

func (s *Screen) setCursorXY(x, y int) {
	s.wrapPending = false
	s.cursorX, s.cursorY = x, y
	s.clampCursor()
}
