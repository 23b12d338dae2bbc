package main

import (
	"os"

	"groundhog/internal/config"
	"groundhog/internal/log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// configureLogging rebuilds the package logger from the flags, the
// [logging] section and $GROUNDHOG_LOG. An invalid filter is reported and
// ignored.
func (a *app) configureLogging(cmd *cobra.Command) {
	lc := a.cfg.Logging

	spec := os.Getenv(log.FilterEnv)
	if cmd.Name() == "tui" {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			spec = "tui=debug," + spec
		}
	}
	filter, filterErr := log.ParseFilter(spec)

	opts := []log.Option{
		log.WithOutput(a.stderr),
		log.WithLevel(log.VerbosityLevel(a.verbose, a.quiet)),
		log.WithFormat(logFormat(lc.Format)),
		log.WithTimestamps(lc.Timestamps),
		log.WithThreadIDs(lc.ThreadIDs),
		log.WithColor(a.cfg.Output.Color),
		log.WithFilter(filter),
	}
	if lc.File != "" {
		opts = append(opts, log.WithFile(lc.File), log.WithFileLevel(fileLevel(lc.Level)))
	}
	log.Configure(opts...)

	if filterErr != nil {
		log.LogWithError(filterErr).Warn("Ignoring invalid log filter")
	}
}

func logFormat(f config.LogFormat) log.Format {
	switch f {
	case config.FormatJSON:
		return log.FormatJSON
	case config.FormatCompact:
		return log.FormatCompact
	default:
		return log.FormatPretty
	}
}

func fileLevel(l config.LogLevel) logrus.Level {
	switch l {
	case config.LevelTrace:
		return logrus.TraceLevel
	case config.LevelDebug:
		return logrus.DebugLevel
	case config.LevelWarn:
		return logrus.WarnLevel
	case config.LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
