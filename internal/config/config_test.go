package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/culturebot.db", cfg.DatabasePath)
	assert.Equal(t, "gpt-4o-mini", cfg.AnalysisModel)
	assert.Equal(t, "gpt-4o", cfg.VisionModel)
	assert.Equal(t, 2.0, cfg.DailyLimitUSD)
	assert.Equal(t, 0.4, cfg.MinMatchScore)
	assert.Equal(t, 20, cfg.MaxFameLevel)
	assert.Equal(t, 6, cfg.VisionCandidateCount)
	assert.True(t, cfg.EnableVision)
	assert.Equal(t, "https://query.wikidata.org/sparql", cfg.WikidataEndpoint)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MIN_MATCH_SCORE", "0.6")
	t.Setenv("MAX_FAME_LEVEL", "50")
	t.Setenv("ENABLE_VISION", "false")
	t.Setenv("DELIVERY_INTERVAL", "12h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.6, cfg.MinMatchScore)
	assert.Equal(t, 50, cfg.MaxFameLevel)
	assert.False(t, cfg.EnableVision)
	assert.Equal(t, "12h0m0s", cfg.DeliveryInterval.String())
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := []struct{ key, val string }{
		{"MIN_MATCH_SCORE", "lots"},
		{"MAX_FAME_LEVEL", "1.5"},
		{"ENABLE_VISION", "si"},
		{"DELIVERY_INTERVAL", "daily"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("score range enforced", func(t *testing.T) {
		cfg := base()
		cfg.MinMatchScore = 1.2
		assert.Error(t, cfg.Validate())
		cfg.MinMatchScore = -0.1
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative fame level rejected", func(t *testing.T) {
		cfg := base()
		cfg.MaxFameLevel = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestValidateForAnalysis(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.OpenAIAPIKey = ""
	assert.Error(t, cfg.ValidateForAnalysis())

	cfg.OpenAIAPIKey = "sk-test"
	assert.NoError(t, cfg.ValidateForAnalysis())
}

func TestValidateForEmail(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.ValidateForEmail())

	cfg.SMTPHost = "smtp.example.org"
	cfg.EmailFrom = "bot@example.org"
	cfg.EmailTo = "reader@example.org"
	assert.NoError(t, cfg.ValidateForEmail())
}

func TestValidateForServe(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	t.Run("email optional", func(t *testing.T) {
		assert.NoError(t, cfg.ValidateForServe())
	})

	t.Run("partial email config rejected", func(t *testing.T) {
		c := *cfg
		c.SMTPHost = "smtp.example.org"
		assert.Error(t, c.ValidateForServe())
	})
}
