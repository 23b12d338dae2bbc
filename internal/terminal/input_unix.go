//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"time"

	"groundhog/internal/errors"

	"golang.org/x/sys/unix"
)

// InputReader is the EventSource for a real terminal. It polls the input
// descriptor with a timeout and watches SIGWINCH for resizes.
type InputReader struct {
	backend InputBackend
	in      *os.File
	fd      int
	winch   chan os.Signal
	dec     *decoder
	pending []byte
	readBuf [256]byte
}

// NewInputReader starts watching for resizes. Close releases the signal
// subscription.
func NewInputReader(b InputBackend) *InputReader {
	r := &InputReader{
		backend: b,
		in:      b.Input(),
		winch:   make(chan os.Signal, 1),
		dec:     newDecoder(),
	}
	r.fd = int(r.in.Fd())
	signal.Notify(r.winch, unix.SIGWINCH)
	return r
}

// Next returns the next event, waiting at most timeout for input. A pending
// resize is reported before any input. Bytes left over from an earlier read
// are decoded before polling again. A sequence split across reads is held
// until the rest arrives; if the wait times out first, the held bytes are
// decoded as they stand, so a lone ESC becomes the escape key.
func (r *InputReader) Next(timeout time.Duration) (Event, error) {
	select {
	case <-r.winch:
		w, h, err := r.backend.Size()
		if err != nil {
			return nil, errors.NewTUIError("query terminal size", err)
		}
		return Resize{Width: w, Height: h}, nil
	default:
	}

	if ev, ok := r.take(false); ok {
		return ev, nil
	}

	fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if err == unix.EINTR {
			// Usually SIGWINCH; the next call reports it
			return Tick{}, nil
		}
		return nil, errors.NewTUIError("poll input", err)
	}
	if n == 0 {
		if ev, ok := r.take(true); ok {
			return ev, nil
		}
		return Tick{}, nil
	}

	revents := fds[0].Revents
	if revents&unix.POLLNVAL != 0 {
		return nil, errors.NewTUIError("poll input", unix.EBADF)
	}
	if revents&unix.POLLIN == 0 && revents&(unix.POLLHUP|unix.POLLERR) != 0 {
		return nil, errors.NewTUIError("read input", unix.EIO)
	}

	m, err := r.in.Read(r.readBuf[:])
	if err != nil {
		return nil, errors.NewTUIError("read input", err)
	}
	r.pending = append(r.pending, r.readBuf[:m]...)
	if ev, ok := r.take(false); ok {
		return ev, nil
	}
	return Tick{}, nil
}

// take decodes one event from the pending bytes. It reports false when
// nothing is pending or, unless flush is set, when the pending bytes are an
// incomplete sequence.
func (r *InputReader) take(flush bool) (Event, bool) {
	if len(r.pending) == 0 {
		return nil, false
	}
	ev, n := r.dec.decode(r.pending, flush)
	if n == 0 {
		if !flush {
			return nil, false
		}
		n, ev = len(r.pending), Tick{}
	}
	r.pending = r.pending[n:]
	if len(r.pending) == 0 {
		r.pending = nil
	}
	return ev, true
}

// Close stops resize notifications.
func (r *InputReader) Close() error {
	signal.Stop(r.winch)
	return nil
}
