package historyring

import (
	"database/sql"
	"encoding/binary"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kterm/konsole-engine/internal/screen"
)

// SQLiteStore is an alternative Store backing scrollback in a SQLite table
// instead of an in-process slice, for callers that want the history
// queryable (e.g. a search tool running against the same file while the
// session is live) or persisted across process restarts. Each finalized
// line is one row; cells are packed into a compact binary blob rather than
// stored as individual rows, since a line is always read back whole or by
// contiguous range.
type SQLiteStore struct {
	db  *sql.DB
	len int
}

// OpenSQLiteStore opens (creating if absent) a scrollback database at path.
// Use ":memory:" for a private in-process database that still exercises the
// SQLite code path without touching disk.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open scrollback db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS history_lines (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		length INTEGER NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create scrollback schema: %w", err)
	}
	s := &SQLiteStore{db: db}
	row := db.QueryRow(`SELECT COUNT(*) FROM history_lines`)
	_ = row.Scan(&s.len)
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Append(cells []screen.Cell) (int, error) {
	payload := encodeCells(cells)
	_, err := s.db.Exec(`INSERT INTO history_lines (length, payload) VALUES (?, ?)`, len(cells), payload)
	if err != nil {
		return 0, fmt.Errorf("append scrollback line: %w", err)
	}
	s.len++
	return len(cells), nil
}

func (s *SQLiteStore) Read(line, col, count int) []screen.Cell {
	var payload []byte
	var length int
	row := s.db.QueryRow(`SELECT length, payload FROM history_lines ORDER BY seq LIMIT 1 OFFSET ?`, line)
	if err := row.Scan(&length, &payload); err != nil {
		return nil
	}
	cells := decodeCells(payload, length)
	if count < 0 {
		count = length - col
	}
	end := col + count
	if col < 0 {
		col = 0
	}
	if end > len(cells) {
		end = len(cells)
	}
	if col >= end {
		return nil
	}
	out := make([]screen.Cell, end-col)
	copy(out, cells[col:end])
	return out
}

func (s *SQLiteStore) Len() int { return s.len }

func (s *SQLiteStore) Trim(n int) {
	if n <= 0 {
		return
	}
	_, err := s.db.Exec(`DELETE FROM history_lines WHERE seq IN (
		SELECT seq FROM history_lines ORDER BY seq LIMIT ?
	)`, n)
	if err == nil {
		s.len -= n
		if s.len < 0 {
			s.len = 0
		}
	}
}

func (s *SQLiteStore) Reset() {
	_, _ = s.db.Exec(`DELETE FROM history_lines`)
	s.len = 0
}

// encodeCells packs a line of cells into a binary record: rune,
// combining-mark count + runes, fore/back (kind+value), rendition, wide
// flag, one cell after another.
func encodeCells(cells []screen.Cell) []byte {
	buf := make([]byte, 0, len(cells)*16)
	var tmp [4]byte
	putU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(tmp[:], v)
		buf = append(buf, tmp[:]...)
	}
	for _, c := range cells {
		putU32(uint32(c.Char))
		putU32(uint32(len(c.Combining)))
		for _, r := range c.Combining {
			putU32(uint32(r))
		}
		buf = append(buf, byte(c.Fore.Kind))
		putU32(c.Fore.Value)
		buf = append(buf, byte(c.Back.Kind))
		putU32(c.Back.Value)
		putU32(uint32(c.Rendition))
		buf = append(buf, byte(c.Wide))
	}
	return buf
}

func decodeCells(buf []byte, length int) []screen.Cell {
	cells := make([]screen.Cell, 0, length)
	pos := 0
	readU32 := func() uint32 {
		if pos+4 > len(buf) {
			pos = len(buf)
			return 0
		}
		v := binary.LittleEndian.Uint32(buf[pos:])
		pos += 4
		return v
	}
	for i := 0; i < length && pos < len(buf); i++ {
		ch := rune(readU32())
		n := int(readU32())
		combining := make([]rune, 0, n)
		for j := 0; j < n; j++ {
			combining = append(combining, rune(readU32()))
		}
		var foreKind, backKind byte
		if pos < len(buf) {
			foreKind = buf[pos]
			pos++
		}
		foreVal := readU32()
		if pos < len(buf) {
			backKind = buf[pos]
			pos++
		}
		backVal := readU32()
		rendition := readU32()
		var wide byte
		if pos < len(buf) {
			wide = buf[pos]
			pos++
		}
		cells = append(cells, screen.Cell{
			Char:      ch,
			Combining: combining,
			Fore:      screen.Color{Kind: screen.ColorKind(foreKind), Value: foreVal},
			Back:      screen.Color{Kind: screen.ColorKind(backKind), Value: backVal},
			Rendition: screen.Rendition(rendition),
			Wide:      screen.WideFlag(wide),
		})
	}
	return cells
}
