package vtparser

import "testing"

type recordSink struct {
	printed    []rune
	combining  [][]rune
	c0         []byte
	escapes    []byte
	charsets   [][2]byte
	csis       []recordedCSI
	oscs       []string
	unsupported []string
}

type recordedCSI struct {
	final        byte
	private      byte
	intermediate byte
	params       []int
}

func (s *recordSink) Print(r rune, combining []rune) {
	if len(combining) > 0 {
		s.combining = append(s.combining, combining)
		return
	}
	s.printed = append(s.printed, r)
}

func (s *recordSink) C0(b byte)               { s.c0 = append(s.c0, b) }
func (s *recordSink) Escape(final byte)       { s.escapes = append(s.escapes, final) }
func (s *recordSink) DesignateCharset(intro, final byte) {
	s.charsets = append(s.charsets, [2]byte{intro, final})
}
func (s *recordSink) CSI(final byte, private, intermediate byte, params []int) {
	cp := make([]int, len(params))
	copy(cp, params)
	s.csis = append(s.csis, recordedCSI{final, private, intermediate, cp})
}
func (s *recordSink) OSC(payload string)        { s.oscs = append(s.oscs, payload) }
func (s *recordSink) Unsupported(context string) { s.unsupported = append(s.unsupported, context) }

func TestParsePlainText(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("hi"))
	if string(sink.printed) != "hi" {
		t.Errorf("expected printed 'hi', got %q", string(sink.printed))
	}
}

func TestParseC0Controls(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("\r\n\t\a\b"))
	want := []byte{'\r', '\n', '\t', 0x07, 0x08}
	if len(sink.c0) != len(want) {
		t.Fatalf("expected %d C0 controls, got %d", len(want), len(sink.c0))
	}
	for i, b := range want {
		if sink.c0[i] != b {
			t.Errorf("c0[%d] = %#x, want %#x", i, sink.c0[i], b)
		}
	}
}

func TestParseCSICursorPosition(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("\x1b[12;34H"))
	if len(sink.csis) != 1 {
		t.Fatalf("expected 1 CSI, got %d", len(sink.csis))
	}
	got := sink.csis[0]
	if got.final != 'H' || len(got.params) != 2 || got.params[0] != 12 || got.params[1] != 34 {
		t.Errorf("unexpected CSI: %+v", got)
	}
}

func TestParseCSIPrivateMode(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("\x1b[?25h"))
	if len(sink.csis) != 1 {
		t.Fatalf("expected 1 CSI, got %d", len(sink.csis))
	}
	got := sink.csis[0]
	if got.private != '?' || got.final != 'h' || got.params[0] != 25 {
		t.Errorf("unexpected CSI: %+v", got)
	}
}

func TestParseCSIDefaultParam(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("\x1b[H"))
	if len(sink.csis) != 1 {
		t.Fatalf("expected 1 CSI, got %d", len(sink.csis))
	}
	if len(sink.csis[0].params) != 1 || sink.csis[0].params[0] != 0 {
		t.Errorf("expected single zero default param, got %+v", sink.csis[0].params)
	}
}

func TestParseSGRTrueColor(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("\x1b[38;2;10;20;30m"))
	if len(sink.csis) != 1 {
		t.Fatalf("expected 1 CSI, got %d", len(sink.csis))
	}
	params := sink.csis[0].params
	want := []int{38, 2, 10, 20, 30}
	if len(params) != len(want) {
		t.Fatalf("expected %d params, got %d (%v)", len(want), len(params), params)
	}
	for i := range want {
		if params[i] != want[i] {
			t.Errorf("param[%d] = %d, want %d", i, params[i], want[i])
		}
	}
}

func TestParseOSCWithBelTerminator(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("\x1b]0;my title\x07"))
	if len(sink.oscs) != 1 || sink.oscs[0] != "0;my title" {
		t.Errorf("unexpected OSC result: %+v", sink.oscs)
	}
}

func TestParseOSCWithSTTerminator(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("\x1b]0;my title\x1b\\"))
	if len(sink.oscs) != 1 || sink.oscs[0] != "0;my title" {
		t.Errorf("unexpected OSC result: %+v", sink.oscs)
	}
	// the ST's final backslash is consumed as an ordinary ESC-final afterward
	if len(sink.escapes) != 1 || sink.escapes[0] != '\\' {
		t.Errorf("expected trailing ESC final '\\\\', got %+v", sink.escapes)
	}
}

func TestParseDesignateCharset(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("\x1b(0"))
	if len(sink.charsets) != 1 || sink.charsets[0] != ([2]byte{'(', '0'}) {
		t.Errorf("unexpected charset designation: %+v", sink.charsets)
	}
}

func TestParseSimpleEscape(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("\x1b7\x1b8"))
	if len(sink.escapes) != 2 || sink.escapes[0] != '7' || sink.escapes[1] != '8' {
		t.Errorf("unexpected escapes: %+v", sink.escapes)
	}
}

func TestParseMultibyteUTF8(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	p.Parse([]byte("café"))
	if string(sink.printed) != "café" {
		t.Errorf("expected 'café', got %q", string(sink.printed))
	}
}

func TestParseCombiningMark(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	// 'e' followed by combining acute accent (U+0301)
	p.Parse([]byte("é"))
	if string(sink.printed) != "e" {
		t.Errorf("expected base rune 'e' printed normally, got %q", string(sink.printed))
	}
	if len(sink.combining) != 1 || sink.combining[0][0] != '́' {
		t.Errorf("expected combining mark recorded separately, got %+v", sink.combining)
	}
}

func TestParseMalformedSequenceResumesAtGround(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	// A CSI sequence broken off by a stray low control byte resets to ground
	// rather than panicking or wedging the parser.
	p.Parse([]byte("\x1b[3"))
	p.Parse([]byte{0x01})
	p.Parse([]byte("ok"))
	if string(sink.printed) != "ok" {
		t.Errorf("expected parser to recover and print 'ok', got %q", string(sink.printed))
	}
}

func TestParamOverflowClampsRatherThanPanics(t *testing.T) {
	sink := &recordSink{}
	p := New(sink)
	huge := "\x1b[" + "9999999999999999999999m"
	p.Parse([]byte(huge))
	if len(sink.csis) != 1 {
		t.Fatalf("expected 1 CSI despite overflow, got %d", len(sink.csis))
	}
	if sink.csis[0].params[0] != maxParamValue {
		t.Errorf("expected clamp to %d, got %d", maxParamValue, sink.csis[0].params[0])
	}
}

func TestParamOrDefault(t *testing.T) {
	if got := ParamOrDefault([]int{0, 5}, 0, 1); got != 1 {
		t.Errorf("expected default 1 for zero param, got %d", got)
	}
	if got := ParamOrDefault([]int{0, 5}, 1, 1); got != 5 {
		t.Errorf("expected explicit value 5, got %d", got)
	}
	if got := ParamOrDefault([]int{0, 5}, 9, 7); got != 7 {
		t.Errorf("expected default 7 for out-of-range index, got %d", got)
	}
}
