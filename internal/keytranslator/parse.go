package keytranslator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kterm/konsole-engine/internal/logging"
	"github.com/kterm/konsole-engine/internal/termerr"
)

// namedKeys maps the table format's KEY names to small integer codes. A
// real front end (e.g. the bubbles adapter in bubbleskey.go) translates its
// own key representation into these same codes before calling Lookup.
var namedKeys = map[string]int{
	"Up": 1, "Down": 2, "Left": 3, "Right": 4,
	"Home": 5, "End": 6, "PgUp": 7, "PgDown": 8,
	"Insert": 9, "Delete": 10, "Return": 11, "Enter": 11,
	"Tab": 12, "Backspace": 13, "Escape": 14, "Space": 15,
	"F1": 20, "F2": 21, "F3": 22, "F4": 23, "F5": 24, "F6": 25,
	"F7": 26, "F8": 27, "F9": 28, "F10": 29, "F11": 30, "F12": 31,
}

var namedMods = map[string]Mod{
	"Shift": ModShift, "Ctrl": ModCtrl, "Alt": ModAlt, "Meta": ModMeta, "KeyPad": ModKeyPad,
}

var namedStates = map[string]State{
	"AppCursorKeys": StateAppCursorKeys, "Ansi": StateAnsi, "NewLine": StateNewLine,
	"AppScreen": StateAppScreen, "AnyModifier": StateAnyModifier, "AppKeyPad": StateAppKeyPad,
}

// LoadFile parses a Konsole-style keyboard description file: an optional
// `keyboard "description"` header followed by `key KEY[+-MOD]...[+-STATE]...
// : "output" | command` lines. `#` starts a comment running to end of line
// (honored outside quotes) and blank lines are skipped, following the
// original KeyboardTranslatorReader's conventions.
func LoadFile(path string) (*Translator, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", termerr.Wrap(termerr.KeytabParse, "open keytab", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a table from r. A line that fails to parse is logged with its
// line number and skipped rather than aborting the whole read.
func Parse(r io.Reader) (*Translator, string, error) {
	t := NewTranslator()
	description := ""
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "keyboard ") {
			description = strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "keyboard")), `"`)
			continue
		}
		if !strings.HasPrefix(line, "key ") {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			logging.Warn("keytab line %d: %v, skipping", lineNo, err)
			continue
		}
		t.Add(entry)
	}
	if err := scanner.Err(); err != nil {
		return t, description, termerr.Wrap(termerr.KeytabParse, "read keytab", err)
	}
	return t, description, nil
}

func stripComment(line string) string {
	inQuotes := false
	for i, ch := range line {
		switch ch {
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				return line[:i]
			}
		}
	}
	return line
}

// parseLine parses `key KEY[+-MOD]...[+-STATE]... : "output" | Command`.
func parseLine(line string) (KeyEntry, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "key"))
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return KeyEntry{}, fmt.Errorf("missing ':' in keytab line %q", line)
	}
	spec := strings.TrimSpace(rest[:colon])
	output := strings.TrimSpace(rest[colon+1:])

	entry := KeyEntry{}
	spec = strings.NewReplacer("+", " +", "-", " -").Replace(spec)
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return KeyEntry{}, fmt.Errorf("empty key spec")
	}
	if code, ok := namedKeys[fields[0]]; ok {
		entry.KeyCode = code
	} else {
		return KeyEntry{}, fmt.Errorf("unknown key %q", fields[0])
	}

	for _, tok := range fields[1:] {
		if len(tok) < 2 {
			continue
		}
		sign := tok[0]
		name := tok[1:]
		if sign != '+' && sign != '-' {
			continue
		}
		want := sign == '+'
		if m, ok := namedMods[name]; ok {
			entry.ModMask |= m
			if want {
				entry.ModValue |= m
			}
			continue
		}
		if st, ok := namedStates[name]; ok {
			entry.StateMask |= st
			if want {
				entry.StateValue |= st
			}
			continue
		}
	}

	if cmd, ok := parseCommand(output); ok {
		entry.Command = cmd
		return entry, nil
	}

	text, ok := unquote(output)
	if !ok {
		return KeyEntry{}, fmt.Errorf("bad output %q", output)
	}
	entry.Text = decodeEscapes(text)
	return entry, nil
}

func parseCommand(s string) (Command, bool) {
	switch s {
	case "ScrollPageUp":
		return CommandScrollPageUp, true
	case "ScrollPageDown":
		return CommandScrollPageDown, true
	case "ScrollLineUp":
		return CommandScrollLineUp, true
	case "ScrollLineDown":
		return CommandScrollLineDown, true
	case "ScrollToTop":
		return CommandScrollToTop, true
	case "ScrollToBottom":
		return CommandScrollToBottom, true
	case "Erase":
		return CommandErase, true
	}
	return CommandNone, false
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], true
	}
	return "", false
}

// decodeEscapes expands \E (ESC), \t, \r, \n, \b, \f, \xHH.
func decodeEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'E':
			b.WriteByte(0x1b)
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case 'b':
			b.WriteByte(0x08)
			i++
		case 'f':
			b.WriteByte(0x0c)
			i++
		case 'x':
			if i+3 < len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 3
					continue
				}
			}
			b.WriteByte(s[i])
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
