// Package service holds the services commands call into. The AI service is
// a placeholder until a provider client exists.
package service

import (
	"context"
	"fmt"
	"net/url"

	"groundhog/internal/config"
	"groundhog/internal/errors"
	"groundhog/internal/log"
)

// AIService produces explanations for topics.
type AIService struct {
	Enabled bool

	provider config.AIProvider
	model    string
	endpoint string
}

// NewAIService returns a disabled service.
func NewAIService() *AIService {
	return &AIService{}
}

// FromConfig builds a service from the [ai] section. A nil section yields a
// disabled service. A configured endpoint must be an absolute http(s) URL.
func FromConfig(cfg *config.AIConfig) (*AIService, error) {
	if cfg == nil {
		return NewAIService(), nil
	}
	if cfg.Endpoint != "" {
		if err := checkEndpoint(cfg.Endpoint); err != nil {
			return nil, err
		}
	}
	return &AIService{
		Enabled:  true,
		provider: cfg.Provider,
		model:    cfg.Model,
		endpoint: cfg.Endpoint,
	}, nil
}

func checkEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.NewInvalidURL(raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewInvalidURL(raw, fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	if u.Host == "" {
		return errors.NewInvalidURL(raw, fmt.Errorf("missing host"))
	}
	return nil
}

// Available reports whether the service is enabled.
func (s *AIService) Available() bool {
	return s.Enabled
}

// GenerateExplanation returns an explanation of topic.
func (s *AIService) GenerateExplanation(ctx context.Context, topic string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, "explanation cancelled")
	}
	if !s.Enabled {
		return fmt.Sprintf("AI service is disabled. Topic: %s", topic), nil
	}

	log.Subsystem("service.ai").WithContext(ctx).With(
		log.F("provider", s.provider.String()),
		log.F("model", s.model),
		log.F("topic", topic),
	).Debug("Generating explanation")

	return fmt.Sprintf("AI-generated explanation for '%s' (not implemented yet)", topic), nil
}
