// Package keytranslator maps a (key code, modifier state, terminal mode
// state) triple to either a byte sequence to send to the pty or one of a
// small set of semantic scrollback commands, via a table loaded from a
// Konsole-style keyboard description file.
package keytranslator

// Mod is a bitset of keyboard modifiers.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
	ModKeyPad
)

// State is a bitset of terminal mode flags a rule can condition on.
type State uint8

const (
	StateAppCursorKeys State = 1 << iota
	StateAnsi
	StateNewLine
	StateAppScreen
	StateAnyModifier
	StateAppKeyPad
)

// Command is one of the semantic actions a rule can produce instead of a
// literal byte sequence.
type Command int

const (
	CommandNone Command = iota
	CommandScrollPageUp
	CommandScrollPageDown
	CommandScrollLineUp
	CommandScrollLineDown
	CommandScrollToTop
	CommandScrollToBottom
	CommandErase
)

// KeyEntry is one rule: it matches a lookup (k, m, s) when k == KeyCode and
// (m & ModMask) == (ModValue & ModMask), and likewise for state.
type KeyEntry struct {
	KeyCode  int
	ModValue Mod
	ModMask  Mod
	StateValue State
	StateMask  State
	Text     string // raw output text, already escape-decoded; may contain '*' wildcards
	Command  Command
}

func (e KeyEntry) matches(k int, m Mod, st State) bool {
	if e.KeyCode != k {
		return false
	}
	if (m & e.ModMask) != (e.ModValue & e.ModMask) {
		return false
	}
	if e.StateMask&StateAnyModifier != 0 {
		// AnyModifier matches iff at least one non-keypad modifier is pressed.
		if m&^ModKeyPad == 0 {
			return false
		}
	}
	remainingMask := e.StateMask &^ StateAnyModifier
	if (st & remainingMask) != (e.StateValue & remainingMask) {
		return false
	}
	return true
}

// Translator holds rules bucketed by key code, first-match-wins in table
// order.
type Translator struct {
	rules map[int][]KeyEntry
}

// NewTranslator builds an empty Translator; use Add or Load to populate it.
func NewTranslator() *Translator {
	return &Translator{rules: make(map[int][]KeyEntry)}
}

// Add appends a rule, preserving table-appearance order for first-match-wins
// semantics.
func (t *Translator) Add(e KeyEntry) {
	t.rules[e.KeyCode] = append(t.rules[e.KeyCode], e)
}

// Lookup returns the first matching rule's output. If it's a literal text
// rule, wildcard substitution is applied using the modifier combination
// (base 1, +1 Shift, +2 Alt, +4 Ctrl) before returning. ok is false when no
// rule matches.
func (t *Translator) Lookup(keyCode int, mod Mod, state State) (out []byte, cmd Command, ok bool) {
	for _, e := range t.rules[keyCode] {
		if e.matches(keyCode, mod, state) {
			if e.Command != CommandNone {
				return nil, e.Command, true
			}
			return []byte(substituteWildcard(e.Text, mod)), CommandNone, true
		}
	}
	return nil, CommandNone, false
}

func substituteWildcard(text string, mod Mod) string {
	idx := -1
	for i, r := range text {
		if r == '*' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return text
	}
	n := 1
	if mod&ModShift != 0 {
		n += 1
	}
	if mod&ModAlt != 0 {
		n += 2
	}
	if mod&ModCtrl != 0 {
		n += 4
	}
	b := []byte(text)
	digit := byte('0' + n)
	out := make([]byte, 0, len(b))
	out = append(out, b[:idx]...)
	out = append(out, digit)
	out = append(out, b[idx+1:]...)
	return string(out)
}
