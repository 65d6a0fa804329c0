package historyring

import (
	"testing"

	"github.com/kterm/konsole-engine/internal/screen"
)

func TestSQLiteStoreAppendAndRead(t *testing.T) {
	s, err := OpenSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer s.Close()

	cells := cellsOf("hello")
	n, err := s.Append(cells)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if n != len(cells) {
		t.Errorf("expected length %d, got %d", len(cells), n)
	}
	if s.Len() != 1 {
		t.Fatalf("expected Len 1, got %d", s.Len())
	}
	if got := textOf(s.Read(0, 0, -1)); got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
}

func TestSQLiteStorePreservesCombiningMarksAndAttributes(t *testing.T) {
	s, err := OpenSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer s.Close()

	cells := []screen.Cell{{
		Char:      'e',
		Combining: []rune{0x0301},
		Fore:      screen.Color{Kind: screen.ColorIndexed, Value: 3},
		Back:      screen.Color{Kind: screen.ColorRGB, Value: 0x112233},
		Rendition: screen.RenditionBold,
		Wide:      screen.Single,
	}}
	if _, err := s.Append(cells); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got := s.Read(0, 0, -1)
	if len(got) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(got))
	}
	c := got[0]
	if c.Char != 'e' {
		t.Errorf("expected rune 'e', got %q", c.Char)
	}
	if len(c.Combining) != 1 || c.Combining[0] != 0x0301 {
		t.Errorf("expected combining mark preserved, got %+v", c.Combining)
	}
	if c.Fore.Kind != screen.ColorIndexed || c.Fore.Value != 3 {
		t.Errorf("expected fore color preserved, got %+v", c.Fore)
	}
	if c.Back.Kind != screen.ColorRGB || c.Back.Value != 0x112233 {
		t.Errorf("expected back color preserved, got %+v", c.Back)
	}
	if c.Rendition != screen.RenditionBold {
		t.Errorf("expected Bold rendition preserved, got %v", c.Rendition)
	}
}

func TestSQLiteStoreTrimAndReset(t *testing.T) {
	s, err := OpenSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer s.Close()

	s.Append(cellsOf("one"))
	s.Append(cellsOf("two"))
	s.Append(cellsOf("three"))

	s.Trim(1)
	if s.Len() != 2 {
		t.Fatalf("expected Len 2 after Trim, got %d", s.Len())
	}
	if got := textOf(s.Read(0, 0, -1)); got != "two" {
		t.Errorf("expected oldest row trimmed, row 0 = %q", got)
	}

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("expected Len 0 after Reset, got %d", s.Len())
	}
}

func TestSQLiteStoreSatisfiesStoreInterface(t *testing.T) {
	var _ Store = (*SQLiteStore)(nil)
}
