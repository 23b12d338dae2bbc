package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"groundhog/internal/config"
	"groundhog/internal/errors"
	"groundhog/internal/log"

	"github.com/spf13/cobra"
)

// newConfigCmd creates the config command group
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		RunE:  groupRunE,
	}

	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigPathCmd(a))
	cmd.AddCommand(newConfigValidateCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default configuration file",
		Args:        noArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				var err error
				path, err = config.DefaultUserPath()
				if err != nil {
					return err
				}
			}
			if err := config.CreateDefaultFile(path, force); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Created configuration file at %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Where to write the file (default ~/.groundhog/config.toml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(a.cfg, output)
			if err != nil {
				return errors.NewInvalidArguments(cmd.Name(), fmt.Sprintf("unsupported output format '%s'", output))
			}
			if _, err := a.stdout.Write(data); err != nil {
				return errors.FromIOError("stdout", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "toml", "Output format (toml or yaml)")
	return cmd
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Show which configuration file is used",
		Args:        noArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			if path, ok := config.Locate(a.configPath); ok {
				fmt.Fprintln(a.stdout, path)
				return
			}
			fmt.Fprintln(a.stdout, "No configuration file found, using defaults. Searched:")
			for _, p := range config.SearchPaths(a.configPath) {
				fmt.Fprintf(a.stdout, "  %s\n", p)
			}
		},
	}
}

func newConfigValidateCmd(a *app) *cobra.Command {
	var watchFile bool

	cmd := &cobra.Command{
		Use:         "validate",
		Short:       "Check the configuration file",
		Args:        noArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ok := config.Locate(a.configPath)
			if !watchFile {
				return a.validateOnce(path, ok)
			}
			if !ok {
				return errors.NewConfigNotFound(firstCandidate(a.configPath), os.ErrNotExist)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watchConfig(ctx, path)
		},
	}

	cmd.Flags().BoolVar(&watchFile, "watch", false, "Re-validate whenever the file changes")
	return cmd
}

func (a *app) validateOnce(path string, found bool) error {
	if !found {
		fmt.Fprintln(a.stdout, "No configuration file found, defaults are valid")
		return nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s: valid\n", path)
	return nil
}

func (a *app) watchConfig(ctx context.Context, path string) error {
	logger := a.cmdCtx.Logger().With(log.F("path", path))
	logger.Info("Watching configuration file")
	fmt.Fprintf(a.stdout, "Watching %s (interrupt to stop)\n", path)

	return config.Watch(ctx, path, func(_ *config.Config, err error) {
		if err != nil {
			logger.WithError(err).Warn("Configuration is invalid")
			fmt.Fprintf(a.stdout, "%s: invalid: %s\n", path, errors.UserMessage(err))
			return
		}
		fmt.Fprintf(a.stdout, "%s: valid\n", path)
	})
}

func firstCandidate(explicit string) string {
	return config.SearchPaths(explicit)[0]
}
