package log

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Format selects how entries are rendered.
type Format int

const (
	FormatPretty Format = iota
	FormatCompact
	FormatJSON
)

// Option configures a Logger.
type Option func(*options)

type options struct {
	out        io.Writer
	format     Format
	level      logrus.Level
	file       string
	fileLevel  logrus.Level
	timestamps bool
	threadIDs  bool
	color      bool
	filter     *Filter
}

func defaultOptions() *options {
	return &options{
		out:        os.Stderr,
		format:     FormatPretty,
		level:      logrus.WarnLevel,
		fileLevel:  logrus.InfoLevel,
		timestamps: true,
		color:      true,
	}
}

// WithOutput sets the console sink writer.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithFormat sets the entry format.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithLevel sets the console sink level.
func WithLevel(level logrus.Level) Option {
	return func(o *options) { o.level = level }
}

// WithFile adds a file sink appending to path.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithFileLevel sets the file sink level.
func WithFileLevel(level logrus.Level) Option {
	return func(o *options) { o.fileLevel = level }
}

// WithTimestamps toggles timestamps on every sink.
func WithTimestamps(enabled bool) Option {
	return func(o *options) { o.timestamps = enabled }
}

// WithThreadIDs adds a goroutine field to every entry.
func WithThreadIDs(enabled bool) Option {
	return func(o *options) { o.threadIDs = enabled }
}

// WithColor allows colored console output when the console is a terminal.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = enabled }
}

// WithFilter applies per-subsystem level overrides.
func WithFilter(f *Filter) Option {
	return func(o *options) { o.filter = f }
}

func (o *options) formatter(out io.Writer) logrus.Formatter {
	switch o.format {
	case FormatJSON:
		return &logrus.JSONFormatter{
			DisableTimestamp: !o.timestamps,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		}
	case FormatCompact:
		return &logrus.TextFormatter{
			DisableColors:    true,
			DisableTimestamp: !o.timestamps,
			FullTimestamp:    true,
			TimestampFormat:  "15:04:05",
			DisableQuote:     true,
		}
	default:
		colored := o.color && isTerminal(out)
		return &logrus.TextFormatter{
			ForceColors:      colored,
			DisableColors:    !colored,
			DisableTimestamp: !o.timestamps,
			FullTimestamp:    true,
		}
	}
}

func (o *options) fileFormatter() logrus.Formatter {
	return o.formatter(nil)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
