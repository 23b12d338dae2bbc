//go:build !unix

package terminal

import (
	"runtime"
	"time"

	"groundhog/internal/errors"
)

// InputReader is unavailable on this platform; Next always fails.
type InputReader struct{}

func NewInputReader(InputBackend) *InputReader {
	return &InputReader{}
}

func (r *InputReader) Next(time.Duration) (Event, error) {
	return nil, errors.NewTUIError("read input", errors.Newf("interactive input is not supported on %s", runtime.GOOS))
}

func (r *InputReader) Close() error {
	return nil
}
