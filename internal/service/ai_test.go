package service

import (
	"context"
	"testing"

	"groundhog/internal/config"
	"groundhog/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIServiceDefaults(t *testing.T) {
	s := NewAIService()
	assert.False(t, s.Enabled)
	assert.False(t, s.Available())

	s = &AIService{Enabled: true}
	assert.True(t, s.Available())
}

func TestGenerateExplanation(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		out, err := NewAIService().GenerateExplanation(ctx, "rust")
		require.NoError(t, err)
		assert.Equal(t, "AI service is disabled. Topic: rust", out)
	})

	t.Run("enabled", func(t *testing.T) {
		out, err := (&AIService{Enabled: true}).GenerateExplanation(ctx, "rust")
		require.NoError(t, err)
		assert.Equal(t, "AI-generated explanation for 'rust' (not implemented yet)", out)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewAIService().GenerateExplanation(cctx, "rust")
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestFromConfig(t *testing.T) {
	t.Run("no section", func(t *testing.T) {
		s, err := FromConfig(nil)
		require.NoError(t, err)
		assert.False(t, s.Available())
	})

	t.Run("configured", func(t *testing.T) {
		s, err := FromConfig(&config.AIConfig{
			Provider: config.ProviderAnthropic,
			Model:    "some-model",
			Endpoint: "https://api.example.com/v1",
		})
		require.NoError(t, err)
		assert.True(t, s.Available())
	})

	t.Run("no endpoint", func(t *testing.T) {
		s, err := FromConfig(&config.AIConfig{Provider: config.ProviderLocal, Model: "m"})
		require.NoError(t, err)
		assert.True(t, s.Available())
	})

	for _, endpoint := range []string{"ftp://example.com", "localhost:8080", "http://", "http://%zz"} {
		t.Run("invalid "+endpoint, func(t *testing.T) {
			_, err := FromConfig(&config.AIConfig{Model: "m", Endpoint: endpoint})
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.NetworkInvalidURL))
			assert.Equal(t, errors.ExitUnavailable, errors.ExitCode(err))
		})
	}
}
