package keytranslator

import (
	"github.com/charmbracelet/bubbles/key"
)

// FromBinding extracts the (code, mod) pair Lookup needs from a bubbles
// key.Msg, matching against a small set of known bindings; the binding set
// doubles as documentation of exactly which physical keys this front end
// recognizes. ok is false for anything else (printable runes, multi-rune
// paste text), since those have no KeyCode in this table format.
func FromBinding(msg key.Msg) (code int, mod Mod, ok bool) {
	str := msg.String()
	switch {
	case key.Matches(msg, bindingUp):
		return KeyUp, modFromString(str), true
	case key.Matches(msg, bindingDown):
		return KeyDown, modFromString(str), true
	case key.Matches(msg, bindingLeft):
		return KeyLeft, modFromString(str), true
	case key.Matches(msg, bindingRight):
		return KeyRight, modFromString(str), true
	case key.Matches(msg, bindingHome):
		return KeyHome, modFromString(str), true
	case key.Matches(msg, bindingEnd):
		return KeyEnd, modFromString(str), true
	case key.Matches(msg, bindingPgUp):
		return KeyPgUp, modFromString(str), true
	case key.Matches(msg, bindingPgDown):
		return KeyPgDown, modFromString(str), true
	case key.Matches(msg, bindingDelete):
		return KeyDelete, modFromString(str), true
	case key.Matches(msg, bindingEnter):
		return KeyReturn, modFromString(str), true
	case key.Matches(msg, bindingTab):
		return KeyTab, modFromString(str), true
	case key.Matches(msg, bindingBackspace):
		return KeyBackspace, modFromString(str), true
	case key.Matches(msg, bindingEscape):
		return KeyEscape, modFromString(str), true
	}
	return 0, 0, false
}

var (
	bindingUp        = key.NewBinding(key.WithKeys("up", "shift+up", "alt+up"))
	bindingDown      = key.NewBinding(key.WithKeys("down", "shift+down", "alt+down"))
	bindingLeft      = key.NewBinding(key.WithKeys("left", "shift+left", "alt+left"))
	bindingRight     = key.NewBinding(key.WithKeys("right", "shift+right", "alt+right"))
	bindingHome      = key.NewBinding(key.WithKeys("home"))
	bindingEnd       = key.NewBinding(key.WithKeys("end"))
	bindingPgUp      = key.NewBinding(key.WithKeys("pgup"))
	bindingPgDown    = key.NewBinding(key.WithKeys("pgdown"))
	bindingDelete    = key.NewBinding(key.WithKeys("delete"))
	bindingEnter     = key.NewBinding(key.WithKeys("enter", "shift+enter"))
	bindingTab       = key.NewBinding(key.WithKeys("tab", "shift+tab"))
	bindingBackspace = key.NewBinding(key.WithKeys("backspace"))
	bindingEscape    = key.NewBinding(key.WithKeys("esc"))
)

func modFromString(s string) Mod {
	var m Mod
	for {
		switch {
		case hasPrefix(s, "shift+"):
			m |= ModShift
			s = s[len("shift+"):]
		case hasPrefix(s, "alt+"):
			m |= ModAlt
			s = s[len("alt+"):]
		case hasPrefix(s, "ctrl+"):
			m |= ModCtrl
			s = s[len("ctrl+"):]
		default:
			return m
		}
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
