// Package terminal owns the interactive terminal: raw mode, the alternate
// screen, drawing and input events.
package terminal

import (
	"io"
	"os"

	"groundhog/internal/errors"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// Mouse reporting: button-event tracking with SGR extended coordinates.
const (
	enableMouse  = ansi.SetButtonEventMouseMode + ansi.SetSgrExtMouseMode
	disableMouse = ansi.ResetSgrExtMouseMode + ansi.ResetButtonEventMouseMode
)

var errNotTerminal = errors.New("not a terminal")

// Backend is the set of terminal operations a Session drives. Every Enable
// or Enter has a matching Disable or Leave.
type Backend interface {
	io.Writer
	EnableRawMode() error
	DisableRawMode() error
	EnterAlternateScreen() error
	LeaveAlternateScreen() error
	EnableMouseCapture() error
	DisableMouseCapture() error
	HideCursor() error
	ShowCursor() error
	Size() (width, height int, err error)
}

// InputBackend is what an InputReader needs from the terminal.
type InputBackend interface {
	Input() *os.File
	Size() (width, height int, err error)
}

// StdioBackend drives the process's controlling terminal via stdin/stdout.
type StdioBackend struct {
	in    *os.File
	out   *os.File
	state *term.State
}

// NewStdioBackend returns a backend over os.Stdin and os.Stdout.
func NewStdioBackend() *StdioBackend {
	return &StdioBackend{in: os.Stdin, out: os.Stdout}
}

// IsTerminal reports whether both stdin and stdout are terminals.
func (b *StdioBackend) IsTerminal() bool {
	return term.IsTerminal(int(b.in.Fd())) && term.IsTerminal(int(b.out.Fd()))
}

func (b *StdioBackend) Input() *os.File {
	return b.in
}

func (b *StdioBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *StdioBackend) writeString(s string) error {
	_, err := io.WriteString(b.out, s)
	return err
}

// EnableRawMode puts stdin into raw mode, remembering the previous state.
func (b *StdioBackend) EnableRawMode() error {
	fd := int(b.in.Fd())
	if !term.IsTerminal(fd) {
		return errNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	b.state = state
	return nil
}

// DisableRawMode restores the state saved by EnableRawMode.
func (b *StdioBackend) DisableRawMode() error {
	if b.state == nil {
		return nil
	}
	err := term.Restore(int(b.in.Fd()), b.state)
	b.state = nil
	return err
}

func (b *StdioBackend) EnterAlternateScreen() error {
	return b.writeString(ansi.SetAltScreenSaveCursorMode)
}

func (b *StdioBackend) LeaveAlternateScreen() error {
	return b.writeString(ansi.ResetAltScreenSaveCursorMode)
}

func (b *StdioBackend) EnableMouseCapture() error {
	return b.writeString(enableMouse)
}

func (b *StdioBackend) DisableMouseCapture() error {
	return b.writeString(disableMouse)
}

func (b *StdioBackend) HideCursor() error {
	return b.writeString(ansi.HideCursor)
}

func (b *StdioBackend) ShowCursor() error {
	return b.writeString(ansi.ShowCursor)
}

// Size returns the terminal dimensions in cells.
func (b *StdioBackend) Size() (int, int, error) {
	return term.GetSize(int(b.out.Fd()))
}
