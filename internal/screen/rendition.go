package screen

// SetRendition ORs bits into the pen.
func (s *Screen) SetRendition(bits Rendition) {
	s.pen.Rendition |= bits
}

// ResetRendition clears bits from the pen.
func (s *Screen) ResetRendition(bits Rendition) {
	s.pen.Rendition &^= bits
}

func (s *Screen) SetForeColor(c Color) { s.pen.Fore = c }
func (s *Screen) SetBackColor(c Color) { s.pen.Back = c }

// SetDefaultRendition resets the pen to the construction default (SGR 0).
func (s *Screen) SetDefaultRendition() {
	s.pen = Pen{}
}

func (s *Screen) ResetForeColor() { s.pen.Fore = DefaultColor }
func (s *Screen) ResetBackColor() { s.pen.Back = DefaultColor }
