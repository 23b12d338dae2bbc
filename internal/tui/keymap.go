package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the interactive mode.
type KeyMap struct {
	Increment key.Binding
	Reset     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings. ctrl+c arrives as a key in
// raw mode, so it quits like q.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Increment: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("space", "increment"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increment, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (k KeyMap) empty() bool {
	return len(k.Quit.Keys()) == 0 && len(k.Increment.Keys()) == 0 && len(k.Reset.Keys()) == 0
}
