package terminal

import (
	"io"
	"strings"

	"groundhog/internal/errors"

	"github.com/charmbracelet/x/ansi"
)

// Screen draws whole frames onto the terminal.
type Screen struct {
	out    io.Writer
	width  int
	height int
}

// Sizer reports terminal dimensions.
type Sizer interface {
	Size() (width, height int, err error)
}

// NewScreen creates a screen writing to w, sized from the terminal.
func NewScreen(b interface {
	io.Writer
	Sizer
}) (*Screen, error) {
	w, h, err := b.Size()
	if err != nil {
		return nil, errors.NewTUIError("query terminal size", err)
	}
	return &Screen{out: b, width: w, height: h}, nil
}

// Draw replaces the screen contents with frame. Line feeds are sent as
// CRLF because raw mode disables output post-processing.
func (s *Screen) Draw(frame string) error {
	var b strings.Builder
	b.Grow(len(frame) + 16)
	b.WriteString(ansi.EraseEntireScreen)
	b.WriteString(ansi.CursorHomePosition)
	b.WriteString(normalizeNewlines(frame))

	if _, err := io.WriteString(s.out, b.String()); err != nil {
		return errors.NewTUIError("draw frame", err)
	}
	return nil
}

// Resize records new dimensions.
func (s *Screen) Resize(width, height int) {
	s.width, s.height = width, height
}

// Size returns the last known dimensions.
func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
