package keytranslator

// Fallback returns a small built-in table covering the keys users notice
// immediately if missing, so a Translator is never completely empty when no
// keytab file loads (missing file, or a parse failure that leaves zero
// rules). Grounded on FallbackKeyboardTranslator, which in the original
// only maps Tab; this extends it to arrows, Home/End, and Enter/Backspace
// since a headless engine has no window-manager-level Tab fallback to rely
// on instead.
func Fallback() *Translator {
	t := NewTranslator()
	t.Add(KeyEntry{KeyCode: KeyTab, Text: "\t"})
	t.Add(KeyEntry{KeyCode: KeyReturn, Text: "\r"})
	t.Add(KeyEntry{KeyCode: KeyBackspace, Text: "\x7f"})
	t.Add(KeyEntry{KeyCode: KeyEscape, Text: "\x1b"})
	t.Add(KeyEntry{KeyCode: KeyUp, Text: "\x1b[A"})
	t.Add(KeyEntry{KeyCode: KeyDown, Text: "\x1b[B"})
	t.Add(KeyEntry{KeyCode: KeyRight, Text: "\x1b[C"})
	t.Add(KeyEntry{KeyCode: KeyLeft, Text: "\x1b[D"})
	t.Add(KeyEntry{KeyCode: KeyHome, Text: "\x1b[H"})
	t.Add(KeyEntry{KeyCode: KeyEnd, Text: "\x1b[F"})
	t.Add(KeyEntry{KeyCode: KeyDelete, Text: "\x1b[3~"})
	t.Add(KeyEntry{KeyCode: KeyPgUp, Text: "\x1b[5~"})
	t.Add(KeyEntry{KeyCode: KeyPgDown, Text: "\x1b[6~"})
	return t
}
