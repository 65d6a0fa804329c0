// Package historyring implements the append-only scrollback of lines
// evicted from the top of the primary screen, backed by a cells buffer and
// a line-index buffer in the manner of Konsole's original TEHistory.h
// (HistoryBuffer + HistoryScroll), adapted to Go's growable slices instead
// of a raw tmpfile-backed byte buffer.
package historyring

import (
	"github.com/kterm/konsole-engine/internal/screen"
	"github.com/kterm/konsole-engine/internal/termerr"
)

// Store is the storage strategy backing a Ring's two buffers. The default
// Store is an in-memory slice; SQLiteStore (sqlitestore.go) offers a
// queryable alternative with the same observable contract -- callers above
// the interface can't tell which backs a given Ring.
type Store interface {
	// Append adds one finalized line's cells and returns the line's length.
	Append(cells []screen.Cell) (length int, err error)
	// Read copies count cells starting at (line, col) into a fresh slice.
	Read(line, col, count int) []screen.Cell
	// Len reports the number of finalized lines.
	Len() int
	// Trim discards the oldest n lines (bounded-ring eviction).
	Trim(n int)
	// Reset discards everything.
	Reset()
}

// Ring is the HistoryRing component: an append-only scrollback log exposed
// as Len/LineLen/GetCells, with an optional bounded-line-count eviction
// policy (maxLines == 0 means unbounded).
type Ring struct {
	store    Store
	maxLines int
	failed   bool
	onFail   func(error)
}

// Option configures a Ring at construction.
type Option func(*Ring)

// WithMaxLines bounds the ring to at most n finalized lines, discarding the
// oldest line when a new one would exceed it.
func WithMaxLines(n int) Option {
	return func(r *Ring) { r.maxLines = n }
}

// WithFailureHandler installs a callback invoked once when the backing
// store reports a StorageFailure. From then on the Ring itself records
// nothing and reports no lines; Session wires this to log the failure.
func WithFailureHandler(fn func(error)) Option {
	return func(r *Ring) { r.onFail = fn }
}

// New builds a Ring over store (pass NewMemStore() for the default
// in-memory behavior).
func New(store Store, opts ...Option) *Ring {
	r := &Ring{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddLine finalizes line's cells as the next history entry, implementing
// screen.History so Screen can evict directly into a Ring.
func (r *Ring) AddLine(line screen.Line) {
	if r.failed {
		return
	}
	if _, err := r.store.Append(line.Cells); err != nil {
		r.failed = true
		if r.onFail != nil {
			r.onFail(termerr.Wrap(termerr.StorageFailure, "history append", err))
		}
		return
	}
	if r.maxLines > 0 && r.store.Len() > r.maxLines {
		r.store.Trim(r.store.Len() - r.maxLines)
	}
}

// Len returns the number of finalized lines.
func (r *Ring) Len() int {
	if r.failed {
		return 0
	}
	return r.store.Len()
}

// LineLen returns the length, in cells, of finalized line i. A line evicted
// when the terminal was N columns wide keeps its original length forever
// (I5) -- resizing the live screen later never reformats it.
func (r *Ring) LineLen(i int) int {
	if r.failed || i < 0 || i >= r.store.Len() {
		return 0
	}
	return len(r.store.Read(i, 0, -1))
}

// GetCells copies count cells from (i, col) of finalized line i.
// col+count <= LineLen(i) is a precondition; out-of-range reads are
// truncated rather than panicking.
func (r *Ring) GetCells(i, col, count int) []screen.Cell {
	if r.failed || i < 0 || i >= r.store.Len() {
		return nil
	}
	return r.store.Read(i, col, count)
}

// Failed reports whether the ring has switched to no-op mode after a
// StorageFailure.
func (r *Ring) Failed() bool { return r.failed }

// Reset discards all recorded lines in place, implementing screen.History
// so a full terminal reset or CSI 3 J can clear scrollback without severing
// Screen from its backing store. It does not clear a prior StorageFailure --
// a ring that failed stays failed, since the underlying store is presumably
// still broken.
func (r *Ring) Reset() {
	if r.failed {
		return
	}
	r.store.Reset()
}
