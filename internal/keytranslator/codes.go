package keytranslator

// Key codes a KeyEntry.KeyCode can take. Values must stay in sync with
// namedKeys in parse.go, which maps the table file's KEY names onto these.
const (
	KeyUp = iota + 1
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyInsert
	KeyDelete
	KeyReturn
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace
)

const (
	KeyF1 = iota + 20
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)
