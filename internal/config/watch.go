package config

import (
	"context"

	"groundhog/internal/log"
	"groundhog/internal/watch"
)

// Watch reloads and validates path each time it changes, passing the result
// to fn, until ctx is done. fn is called once up front with the current file.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.AddFile(path); err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}

	fn(reload(path))

	logger := log.Subsystem("config").With(log.F("path", path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes():
			if !ok {
				return nil
			}
			logger.With(log.F("op", change.Op.String())).Debug("Configuration file changed")
			fn(reload(path))
		}
	}
}

func reload(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
