package main

import (
	"groundhog/internal/log"
	"groundhog/internal/tui"

	"github.com/spf13/cobra"
)

// newTUICmd creates the tui command
func newTUICmd(a *app) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the TUI (Terminal User Interface)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := a.cmdCtx.Logger().With(log.F("debug", debug))
			logger.Info("Starting TUI mode")

			final, err := tui.Run(cmd.Context(), tui.Options{Debug: debug})
			if err != nil {
				return err
			}

			logger.With(log.F("counter", final.Counter)).Info("TUI mode ended")
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable TUI debug mode")
	return cmd
}
