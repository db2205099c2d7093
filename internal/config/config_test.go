package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err, "missing config file falls back to defaults")

	assert.Equal(t, "smallbusiness", cfg.Discovery.Subreddit)
	assert.Equal(t, "hot", cfg.Discovery.SortMode)
	assert.Equal(t, 1000, cfg.Discovery.Limit)
	assert.True(t, cfg.Discovery.AutoDiscovery)
	assert.Equal(t, 2, cfg.Filter.MinSentences)
	assert.Equal(t, 150, cfg.Filter.MinChars)
	assert.Equal(t, 2000, cfg.Filter.MaxChars)
	assert.Equal(t, 0.75, cfg.Filter.SimilarityThreshold)
	assert.Equal(t, 6.0, cfg.Filter.PreRankMinScore)
	assert.Equal(t, 6.0, cfg.Classifier.MinScore)
	assert.Equal(t, 5.0, cfg.Adaptive.PreRankMinScore)
	assert.Equal(t, 5.2, cfg.Adaptive.ClassifierMinScore)
	assert.Equal(t, 0.55, cfg.Adaptive.TriggerProgress)
	assert.Equal(t, 0.35, cfg.Adaptive.MinCollectedRatio)
	assert.Equal(t, 10, cfg.Collection.MaxPerThread)
	assert.Equal(t, 220, cfg.Collection.ScanLimit)
	assert.Equal(t, 60, cfg.Discovery.MinSurvivingThreads)
	assert.Equal(t, 30*time.Second, cfg.Source.RequestTimeout)
	assert.Equal(t, 3, cfg.Source.FetchRetries)
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "painminer.yaml")
	yaml := `
discovery:
  subreddit: restaurantowners
  limit: 250
collection:
  target: 25
filter:
  similarity_threshold: 0.9
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "restaurantowners", cfg.Discovery.Subreddit)
	assert.Equal(t, 250, cfg.Discovery.Limit)
	assert.Equal(t, 25, cfg.Collection.Target)
	assert.Equal(t, 0.9, cfg.Filter.SimilarityThreshold)
	// untouched fields keep defaults
	assert.Equal(t, "hot", cfg.Discovery.SortMode)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PAINMINER_SUBREDDIT", "bakers")
	t.Setenv("PAINMINER_TARGET", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "bakers", cfg.Discovery.Subreddit)
	assert.Equal(t, 7, cfg.Collection.Target)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	mutations := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero target", func(c *Config) { c.Collection.Target = -1 }, "target"},
		{"similarity above one", func(c *Config) { c.Filter.SimilarityThreshold = 1.5 }, "similarity"},
		{"min chars above max", func(c *Config) { c.Filter.MinChars = 5000 }, "chars"},
		{"relaxed pre-rank above strict", func(c *Config) { c.Adaptive.PreRankMinScore = 9.0 }, "pre-rank"},
		{"relaxed classifier above strict", func(c *Config) { c.Adaptive.ClassifierMinScore = 9.0 }, "classifier"},
		{"trigger progress out of range", func(c *Config) { c.Adaptive.TriggerProgress = 1.5 }, "trigger"},
		{
			"manual mode without urls",
			func(c *Config) {
				c.Discovery.AutoDiscovery = false
				c.Discovery.ManualThreadURLs = nil
			},
			"manual",
		},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.SetDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	assert.NoError(t, cfg.Validate())
}
