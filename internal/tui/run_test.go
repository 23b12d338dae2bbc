//go:build unix

package tui

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"groundhog/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeTerminal reads keys from a pipe and records output and mode changes.
type pipeTerminal struct {
	bytes.Buffer
	in    *os.File
	calls []string
}

func (p *pipeTerminal) Input() *os.File             { return p.in }
func (p *pipeTerminal) Size() (int, int, error)     { return 100, 30, nil }
func (p *pipeTerminal) EnableRawMode() error        { p.calls = append(p.calls, "raw+"); return nil }
func (p *pipeTerminal) DisableRawMode() error       { p.calls = append(p.calls, "raw-"); return nil }
func (p *pipeTerminal) EnterAlternateScreen() error { p.calls = append(p.calls, "alt+"); return nil }
func (p *pipeTerminal) LeaveAlternateScreen() error { p.calls = append(p.calls, "alt-"); return nil }
func (p *pipeTerminal) EnableMouseCapture() error   { p.calls = append(p.calls, "mouse+"); return nil }
func (p *pipeTerminal) DisableMouseCapture() error  { p.calls = append(p.calls, "mouse-"); return nil }
func (p *pipeTerminal) HideCursor() error           { p.calls = append(p.calls, "cursor+"); return nil }
func (p *pipeTerminal) ShowCursor() error           { p.calls = append(p.calls, "cursor-"); return nil }

func newPipeTerminal(t *testing.T) (*pipeTerminal, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return &pipeTerminal{in: r}, w
}

func TestRunRestoresTerminal(t *testing.T) {
	term, w := newPipeTerminal(t)
	_, err := w.Write([]byte("  rq"))
	require.NoError(t, err)

	final, err := Run(context.Background(), Options{Terminal: term, TickRate: 10 * time.Millisecond})
	require.NoError(t, err)

	assert.True(t, final.Quit)
	assert.Equal(t, uint32(0), final.Counter)
	assert.Equal(t, []string{
		"raw+", "alt+", "mouse+", "cursor+",
		"cursor-", "mouse-", "alt-", "raw-",
	}, term.calls)
	assert.Contains(t, term.String(), "Count: 2")
}

func TestRunRestoresTerminalOnInputError(t *testing.T) {
	term, w := newPipeTerminal(t)
	require.NoError(t, w.Close())

	_, err := Run(context.Background(), Options{Terminal: term})
	require.Error(t, err)
	assert.True(t, errors.IsTUIError(err))
	assert.Equal(t, []string{
		"raw+", "alt+", "mouse+", "cursor+",
		"cursor-", "mouse-", "alt-", "raw-",
	}, term.calls)
}

func TestRunCancelledContext(t *testing.T) {
	term, _ := newPipeTerminal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Terminal: term})
	require.Error(t, err)
	assert.True(t, errors.IsTUIError(err))
	assert.Empty(t, term.calls)
}
