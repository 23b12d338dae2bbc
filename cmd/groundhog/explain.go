package main

import (
	"context"
	"fmt"

	"groundhog/internal/errors"
	"groundhog/internal/log"
	"groundhog/internal/service"

	"github.com/spf13/cobra"
)

const defaultTopic = "general"

// newExplainCmd creates the explain command
func newExplainCmd(a *app) *cobra.Command {
	var topic string

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Provides explanations and demonstrations",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.explain(cmd.Context(), topic)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "Topic to explain")
	return cmd
}

func (a *app) explain(ctx context.Context, topic string) error {
	logger := a.cmdCtx.WithInput(topic).Logger()

	if ex := a.cfg.Commands.Explain; ex != nil && !ex.Enabled {
		return errors.NewCommandPermissionDenied("explain")
	}

	logger.Info("Starting explain command")
	if topic != "" {
		logger.With(log.F("topic", topic)).Info("Explaining topic")
		fmt.Fprintf(a.stdout, "hello world - explaining: %s\n", topic)
	} else {
		logger.Info("Explaining default topic")
		fmt.Fprintln(a.stdout, "hello world")
	}

	svc, err := service.FromConfig(a.cfg.AI)
	if err != nil {
		return err
	}
	if topic == "" {
		topic = defaultTopic
	}
	if svc.Available() {
		text, err := svc.GenerateExplanation(ctx, topic)
		if err != nil {
			return errors.NewExecutionFailed("explain", err)
		}
		fmt.Fprintln(a.stdout, text)
	}

	a.cmdCtx.WithOutcome(fmt.Sprintf("explained topic '%s'", topic))
	logger.Info("Explain command completed successfully")
	return nil
}
