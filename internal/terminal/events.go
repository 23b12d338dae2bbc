package terminal

import (
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Event is one input observation. The set is closed: KeyPress, Resize,
// Tick and Pointer.
type Event interface {
	isEvent()
}

// EventSource yields events, waiting at most timeout for input. A Tick is
// returned when the wait expires or the input was not understood.
type EventSource interface {
	Next(timeout time.Duration) (Event, error)
}

// KeyPress is a decoded keystroke.
type KeyPress struct {
	Key Key
}

// Resize reports new terminal dimensions.
type Resize struct {
	Width  int
	Height int
}

// Tick reports that no input arrived before the timeout.
type Tick struct{}

// Pointer is a mouse report. Coordinates are zero-based cells.
type Pointer struct {
	X       int
	Y       int
	Button  ansi.MouseButton
	Release bool
	Motion  bool
}

func (KeyPress) isEvent() {}
func (Resize) isEvent()   {}
func (Tick) isEvent()     {}
func (Pointer) isEvent()  {}

// String returns the key name, so a KeyPress can be matched against key
// bindings directly.
func (k KeyPress) String() string {
	return k.Key.String()
}

// KeyCode classifies a key.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyCtrl
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyInsert
	KeyDelete
	KeyBackTab
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyEscape:    "esc",
	KeySpace:     "space",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyRight:     "right",
	KeyLeft:      "left",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
	KeyBackTab:   "shift+tab",
}

// Key identifies a keystroke. Rune is set for KeyRune and KeyCtrl.
type Key struct {
	Code KeyCode
	Rune rune
	Alt  bool
}

// String renders the key the way key bindings name it: "q", "space",
// "ctrl+c", "alt+x", "up".
func (k Key) String() string {
	var name string
	switch k.Code {
	case KeyRune:
		name = string(k.Rune)
	case KeyCtrl:
		name = "ctrl+" + string(k.Rune)
	default:
		name = keyNames[k.Code]
	}
	if k.Alt {
		return "alt+" + name
	}
	return name
}
