package main

import (
	"fmt"
	"io"
	"strings"

	"groundhog/internal/command"
	"groundhog/internal/config"
	"groundhog/internal/errors"
	"groundhog/internal/log"

	"github.com/spf13/cobra"
)

// skipConfig marks commands that run without resolving configuration.
const skipConfig = "groundhog/skip-config"

// app carries the parsed global flags and the state shared by commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	verbose    int
	quiet      bool
	configPath string

	cfg    *config.Config
	cmdCtx *command.Context
}

// newRootCmd creates the root command
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "groundhog",
		Short: "An AI coding assistant command line application",
		Long: `Groundhog is an AI coding assistant for the command line.

It explains topics on request and hosts an interactive terminal mode.
Configuration is read from the first file found among --config,
$GROUNDHOG_CONFIG, ./groundhog.toml, ~/.groundhog/config.toml and
/etc/groundhog/config.toml.`,
		Version:           config.Version,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Commands.Default != "" {
				return a.runDefault(cmd)
			}
			cmd.SetOut(a.stderr)
			cmd.Usage()
			return errors.NewInvalidArguments(cmd.Name(), "a subcommand is required")
		},
	}
	rootCmd.SetVersionTemplate("groundhog version {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.NewInvalidArguments(cmd.Name(), err.Error())
	})

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbose, "verbose", "v", "Increase logging verbosity (can be repeated)")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "Suppress non-error output")
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to configuration file")

	// Add subcommands
	rootCmd.AddCommand(newExplainCmd(a))
	rootCmd.AddCommand(newTUICmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

// setup resolves configuration and configures logging before any command
// runs. Positional arguments reaching the root name an unknown command.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if !cmd.HasParent() && len(args) > 0 {
		return errors.NewCommandNotFound(args[0])
	}

	cfg := config.New()
	if needsConfig(cmd) {
		var err error
		cfg, err = config.Resolve(a.configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	a.configureLogging(cmd)

	a.cmdCtx = command.NewContext(cmd.Name())
	log.LogWithFields(
		log.F("command", cmd.CommandPath()),
		log.F("verbose", a.verbose),
		log.F("quiet", a.quiet),
		log.F("config_path", a.configPath),
	).Info("Starting groundhog application")
	return nil
}

// needsConfig reports whether cmd resolves configuration. Commands marked
// skipConfig and everything under them run on defaults, as do cobra's
// generated help and completion commands.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfig] != "" {
			return false
		}
		if c.HasParent() && !c.Parent().HasParent() {
			switch c.Name() {
			case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
				return false
			}
		}
	}
	return true
}

// runDefault runs the subcommand named by commands.default, with its flags
// at their defaults.
func (a *app) runDefault(root *cobra.Command) error {
	name := a.cfg.Commands.Default
	sub, rest, err := root.Find(strings.Fields(name))
	if err != nil || sub == root || len(rest) > 0 || sub.RunE == nil {
		return errors.NewInvalidValue("commands.default", name, "a groundhog subcommand")
	}
	if err := sub.ValidateArgs(nil); err != nil {
		return err
	}

	log.LogWithFields(log.F("command", sub.CommandPath())).Info("Running default command")
	a.cmdCtx = command.NewContext(sub.Name())
	sub.SetContext(root.Context())
	return sub.RunE(sub, nil)
}

// finish logs the outcome of the command with its duration.
func (a *app) finish(err error) {
	if a.cmdCtx == nil {
		if err != nil {
			log.LogError(err, "Command failed")
		}
		return
	}

	result := a.cmdCtx.Finish(err)
	logger := a.cmdCtx.Logger().With(log.F("duration_ms", result.DurationMS))
	if result.IsFailure() {
		logger.WithError(err).Error("Command failed")
		return
	}
	if result.Message != "" {
		logger = logger.With(log.F("outcome", result.Message))
	}
	logger.Info("Command completed successfully")
}

// noArgs rejects positional arguments as invalid arguments.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidArguments(cmd.Name(), fmt.Sprintf("unexpected argument '%s'", args[0]))
	}
	return nil
}

// groupRunE serves commands that only group subcommands.
func groupRunE(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.NewCommandNotFound(cmd.Name() + " " + args[0])
	}
	return cmd.Help()
}
