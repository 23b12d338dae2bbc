package log

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// SubsystemKey is the entry field the subsystem filter matches against.
const SubsystemKey = "subsystem"

// sink is a logrus hook that formats and writes entries at or above its own
// level. The logger itself writes nowhere; every byte goes through a sink.
type sink struct {
	mu        sync.Mutex
	out       io.Writer
	formatter logrus.Formatter
	level     atomic.Uint32
	filter    *Filter
	muted     atomic.Bool
}

func newSink(out io.Writer, formatter logrus.Formatter, level logrus.Level, filter *Filter) *sink {
	s := &sink{out: out, formatter: formatter, filter: filter}
	s.level.Store(uint32(level))
	return s
}

func (s *sink) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (s *sink) enabled(e *logrus.Entry) bool {
	level := logrus.Level(s.level.Load())
	sub, _ := e.Data[SubsystemKey].(string)
	if lvl, ok := s.filter.Level(sub); ok {
		level = lvl
	}
	return e.Level <= level
}

func (s *sink) Fire(e *logrus.Entry) error {
	if s.muted.Load() || !s.enabled(e) {
		return nil
	}
	b, err := s.formatter.Format(e)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.out.Write(b)
	return err
}

// goroutineHook stamps each entry with the calling goroutine's ID.
type goroutineHook struct{}

func (goroutineHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (goroutineHook) Fire(e *logrus.Entry) error {
	e.Data["goroutine"] = goroutineID()
	return nil
}

var stackBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 64)
		return &b
	},
}

// goroutineID parses the ID from the "goroutine N [status]:" header of the
// current stack. Returns 0 if the header cannot be parsed.
func goroutineID() int64 {
	bp := stackBufPool.Get().(*[]byte)
	defer stackBufPool.Put(bp)
	buf := *bp
	n := runtime.Stack(buf, false)
	return parseGoroutineID(buf[:n])
}

func parseGoroutineID(stack []byte) int64 {
	const prefix = "goroutine "
	if len(stack) <= len(prefix) || string(stack[:len(prefix)]) != prefix {
		return 0
	}
	var id int64
	for _, b := range stack[len(prefix):] {
		if b < '0' || b > '9' {
			break
		}
		id = id*10 + int64(b-'0')
	}
	return id
}
