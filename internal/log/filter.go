package log

import (
	"strings"

	"groundhog/internal/errors"

	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
)

// FilterEnv names the environment variable holding subsystem level overrides.
const FilterEnv = "GROUNDHOG_LOG"

// Filter overrides sink levels per subsystem. Its syntax is a comma separated
// list of directives, each either a bare level applying to every subsystem or
// pattern=level where pattern is a glob over dotted subsystem names:
//
//	GROUNDHOG_LOG=info,tui=debug,config.*=trace
//
// The last matching directive wins.
type Filter struct {
	fallback    *logrus.Level
	rules       []filterRule
	highestSeen logrus.Level
}

type filterRule struct {
	pattern string
	glob    glob.Glob
	level   logrus.Level
}

// ParseFilter parses a filter spec. An empty spec yields a nil filter.
func ParseFilter(spec string) (*Filter, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	f := &Filter{}
	for _, directive := range strings.Split(spec, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		pattern, levelName, hasPattern := strings.Cut(directive, "=")
		if !hasPattern {
			levelName = pattern
		}
		level, err := logrus.ParseLevel(strings.TrimSpace(levelName))
		if err != nil {
			return nil, errors.NewInvalidValue(FilterEnv, directive, "pattern=level")
		}
		if level > f.highestSeen {
			f.highestSeen = level
		}

		if !hasPattern {
			lvl := level
			f.fallback = &lvl
			continue
		}

		pattern = strings.TrimSpace(pattern)
		g, err := glob.Compile(pattern, '.')
		if err != nil {
			return nil, errors.NewInvalidValue(FilterEnv, directive, "pattern=level")
		}
		f.rules = append(f.rules, filterRule{pattern: pattern, glob: g, level: level})
	}
	return f, nil
}

// Level returns the override for subsystem, if any directive applies.
func (f *Filter) Level(subsystem string) (logrus.Level, bool) {
	if f == nil {
		return 0, false
	}
	for i := len(f.rules) - 1; i >= 0; i-- {
		if f.rules[i].glob.Match(subsystem) {
			return f.rules[i].level, true
		}
	}
	if f.fallback != nil {
		return *f.fallback, true
	}
	return 0, false
}

func (f *Filter) maxLevel() logrus.Level {
	if f == nil {
		return logrus.PanicLevel
	}
	return f.highestSeen
}
