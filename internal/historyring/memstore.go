package historyring

import "github.com/kterm/konsole-engine/internal/screen"

// MemStore is the default Store: a cells buffer (one flat, growable slice)
// and a line-index buffer (offset+length per finalized line), mirroring
// TEHistory.h's HistoryBuffer/HistoryScroll pair without the tmpfile -- Go's
// GC-managed slices play the role the original gave a memory-mapped file.
type MemStore struct {
	cells []screen.Cell
	index []lineEntry
}

type lineEntry struct {
	offset, length int
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Append(cells []screen.Cell) (int, error) {
	offset := len(m.cells)
	m.cells = append(m.cells, cells...)
	m.index = append(m.index, lineEntry{offset: offset, length: len(cells)})
	return len(cells), nil
}

func (m *MemStore) Read(line, col, count int) []screen.Cell {
	if line < 0 || line >= len(m.index) {
		return nil
	}
	e := m.index[line]
	if count < 0 {
		count = e.length - col
	}
	start := e.offset + col
	end := start + count
	if start < e.offset {
		start = e.offset
	}
	if end > e.offset+e.length {
		end = e.offset + e.length
	}
	if start >= end {
		return nil
	}
	out := make([]screen.Cell, end-start)
	copy(out, m.cells[start:end])
	return out
}

func (m *MemStore) Len() int { return len(m.index) }

// Trim discards the oldest n lines, reindexing the remaining entries'
// offsets by shifting the cells buffer's tail to the front.
func (m *MemStore) Trim(n int) {
	if n <= 0 {
		return
	}
	if n >= len(m.index) {
		m.cells = m.cells[:0]
		m.index = m.index[:0]
		return
	}
	cut := m.index[n].offset
	m.cells = append(m.cells[:0], m.cells[cut:]...)
	newIndex := make([]lineEntry, 0, len(m.index)-n)
	for _, e := range m.index[n:] {
		newIndex = append(newIndex, lineEntry{offset: e.offset - cut, length: e.length})
	}
	m.index = newIndex
}

func (m *MemStore) Reset() {
	m.cells = m.cells[:0]
	m.index = m.index[:0]
}
