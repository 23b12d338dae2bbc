package terminal

import (
	"bytes"
	"fmt"
	"testing"

	"groundhog/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records every call and fails the named operation on demand.
type fakeBackend struct {
	bytes.Buffer
	calls  []string
	failOn map[string]bool
	width  int
	height int
}

func newFakeBackend(failOn ...string) *fakeBackend {
	f := &fakeBackend{failOn: map[string]bool{}, width: 80, height: 24}
	for _, op := range failOn {
		f.failOn[op] = true
	}
	return f
}

func (f *fakeBackend) call(op string) error {
	f.calls = append(f.calls, op)
	if f.failOn[op] {
		return fmt.Errorf("%s failed", op)
	}
	return nil
}

func (f *fakeBackend) EnableRawMode() error        { return f.call("raw+") }
func (f *fakeBackend) DisableRawMode() error       { return f.call("raw-") }
func (f *fakeBackend) EnterAlternateScreen() error { return f.call("alt+") }
func (f *fakeBackend) LeaveAlternateScreen() error { return f.call("alt-") }
func (f *fakeBackend) EnableMouseCapture() error   { return f.call("mouse+") }
func (f *fakeBackend) DisableMouseCapture() error  { return f.call("mouse-") }
func (f *fakeBackend) HideCursor() error           { return f.call("cursor+") }
func (f *fakeBackend) ShowCursor() error           { return f.call("cursor-") }

func (f *fakeBackend) Size() (int, int, error) {
	if err := f.call("size"); err != nil {
		return 0, 0, err
	}
	return f.width, f.height, nil
}

func TestEnterAndClose(t *testing.T) {
	b := newFakeBackend()

	sess, err := Enter(b)
	require.NoError(t, err)
	assert.Equal(t, Active, sess.State())
	require.NotNil(t, sess.Screen())

	w, h := sess.Screen().Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	require.NoError(t, sess.Close())
	assert.Equal(t, Inactive, sess.State())
	assert.Equal(t, []string{
		"raw+", "alt+", "mouse+", "cursor+", "size",
		"cursor-", "mouse-", "alt-", "raw-",
	}, b.calls)

	// Second Close is a no-op
	require.NoError(t, sess.Close())
	assert.Len(t, b.calls, 9)
}

func TestEnterFailureUnwindsInReverse(t *testing.T) {
	tests := []struct {
		failOn string
		want   []string
	}{
		{"raw+", []string{"raw+"}},
		{"alt+", []string{"raw+", "alt+", "raw-"}},
		{"mouse+", []string{"raw+", "alt+", "mouse+", "alt-", "raw-"}},
		{"cursor+", []string{"raw+", "alt+", "mouse+", "cursor+", "mouse-", "alt-", "raw-"}},
		{"size", []string{"raw+", "alt+", "mouse+", "cursor+", "size", "cursor-", "mouse-", "alt-", "raw-"}},
	}

	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			b := newFakeBackend(tt.failOn)

			sess, err := Enter(b)
			require.Error(t, err)
			assert.Nil(t, sess)
			assert.True(t, errors.IsTUIError(err))
			assert.Contains(t, err.Error(), tt.failOn+" failed")
			assert.Equal(t, tt.want, b.calls)

			// Every acquire that succeeded was released, so the terminal is
			// back in its original mode.
			assert.Equal(t, 0, balance(b.calls, tt.failOn))
		})
	}
}

// balance counts successful acquires minus releases.
func balance(calls []string, failed string) int {
	n := 0
	for _, c := range calls {
		if c == failed || c == "size" {
			continue
		}
		switch c[len(c)-1] {
		case '+':
			n++
		case '-':
			n--
		}
	}
	return n
}

func TestCloseJoinsTeardownErrors(t *testing.T) {
	b := newFakeBackend("mouse-", "raw-")

	sess, err := Enter(b)
	require.NoError(t, err)

	err = sess.Close()
	require.Error(t, err)
	assert.True(t, errors.IsTUIError(err))
	assert.Contains(t, err.Error(), "mouse- failed")
	assert.Contains(t, err.Error(), "raw- failed")

	// Teardown continued past the failures
	assert.Equal(t, []string{"cursor-", "mouse-", "alt-", "raw-"}, b.calls[5:])
}

func TestCloseRunsOnPanic(t *testing.T) {
	b := newFakeBackend()

	func() {
		defer func() { _ = recover() }()
		sess, err := Enter(b)
		require.NoError(t, err)
		defer sess.Close()
		panic("boom")
	}()

	assert.Equal(t, "raw-", b.calls[len(b.calls)-1])
}

func TestScreenDraw(t *testing.T) {
	b := newFakeBackend()
	screen, err := NewScreen(b)
	require.NoError(t, err)

	require.NoError(t, screen.Draw("line one\nline two\r\nline three"))
	out := b.String()
	assert.Contains(t, out, "line one\r\nline two\r\nline three")
	assert.NotContains(t, out, "two\r\r\n")

	screen.Resize(120, 40)
	w, h := screen.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}

type failingWriter struct{ fakeBackend }

func (failingWriter) Write([]byte) (int, error) {
	return 0, fmt.Errorf("broken pipe")
}

func TestScreenDrawError(t *testing.T) {
	b := &failingWriter{fakeBackend: *newFakeBackend()}
	screen, err := NewScreen(b)
	require.NoError(t, err)

	err = screen.Draw("x")
	require.Error(t, err)
	assert.True(t, errors.IsTUIError(err))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "inactive", Inactive.String())
	assert.Equal(t, "raw-mode", RawModeEntered.String())
	assert.Equal(t, "alternate-screen", AlternateScreenEntered.String())
	assert.Equal(t, "active", Active.String())
}
