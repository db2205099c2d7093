// Package config loads painminer configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	defaultSubreddit            = "smallbusiness"
	defaultSortMode             = "hot"
	defaultDiscoveryLimit       = 1000
	defaultMinComments          = 10
	defaultMinSentences         = 2
	defaultMinChars             = 150
	defaultMaxChars             = 2000
	defaultSimilarityThreshold  = 0.75
	defaultPreRankMinScore      = 6.0
	defaultClassifierMinScore   = 6.0
	defaultRelaxedPreRankMin    = 5.0
	defaultRelaxedClassifierMin = 5.2
	defaultRelaxTriggerProgress = 0.55
	defaultRelaxCollectedRatio  = 0.35
	defaultMaxPerThread         = 10
	defaultScanLimit            = 220
	defaultTarget               = 50
	defaultMinSurvivingThreads  = 60
	defaultFetchRetries         = 3
	defaultRequestTimeoutSec    = 30
	defaultRequestsPerMinute    = 30
	defaultUserAgent            = "painminer/1.0 (research collector)"
	defaultOutputDir            = "out"
	defaultDatabaseFile         = "painminer.db"
	defaultRejectedFile         = "rejected_threads.txt"
	defaultLogLevel             = "info"
)

// Config holds all configuration for a collection run.
type Config struct {
	Discovery  DiscoveryConfig  `yaml:"discovery"`
	Filter     FilterConfig     `yaml:"filter"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Adaptive   AdaptiveConfig   `yaml:"adaptive"`
	Collection CollectionConfig `yaml:"collection"`
	Source     SourceConfig     `yaml:"source"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DiscoveryConfig controls thread discovery and ranking.
type DiscoveryConfig struct {
	Subreddit            string   `yaml:"subreddit"`
	SortMode             string   `yaml:"sort_mode"`
	Limit                int      `yaml:"limit"`
	MinCommentsPerThread int      `yaml:"min_comments_per_thread"`
	AutoDiscovery        bool     `yaml:"auto_discovery"`
	ManualThreadURLs     []string `yaml:"manual_thread_urls"`
	MinSurvivingThreads  int      `yaml:"min_surviving_threads"`
}

// FilterConfig controls the cheap pre-classification filters.
type FilterConfig struct {
	MinSentences        int     `yaml:"min_sentences"`
	MinChars            int     `yaml:"min_chars"`
	MaxChars            int     `yaml:"max_chars"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	PreRankMinScore     float64 `yaml:"pre_rank_min_score"`
}

// ClassifierConfig controls the strict classifier.
type ClassifierConfig struct {
	MinScore float64 `yaml:"min_score"`
}

// AdaptiveConfig controls adaptive threshold relaxation.
type AdaptiveConfig struct {
	PreRankMinScore    float64 `yaml:"pre_rank_min_score"`
	ClassifierMinScore float64 `yaml:"classifier_min_score"`
	TriggerProgress    float64 `yaml:"trigger_progress"`
	MinCollectedRatio  float64 `yaml:"min_collected_ratio"`
}

// CollectionConfig controls run-level limits.
type CollectionConfig struct {
	Target       int `yaml:"target"`
	MaxPerThread int `yaml:"max_per_thread"`
	ScanLimit    int `yaml:"scan_limit"`
}

// SourceConfig controls the Reddit content source.
type SourceConfig struct {
	UserAgent         string        `yaml:"user_agent"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	FetchRetries      int           `yaml:"fetch_retries"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	Dir                string `yaml:"dir"`
	DatabaseFile       string `yaml:"database_file"`
	RejectedThreadFile string `yaml:"rejected_thread_file"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug"`
}

// Load reads the YAML config at path (a missing file is not an error;
// defaults apply), layers .env and process environment overrides on top,
// applies defaults, and validates. An invalid configuration is a hard
// failure: the run must not start.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is fine.
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PAINMINER_SUBREDDIT"); v != "" {
		cfg.Discovery.Subreddit = v
	}
	if v := os.Getenv("PAINMINER_TARGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Collection.Target = n
		}
	}
	if v := os.Getenv("PAINMINER_USER_AGENT"); v != "" {
		cfg.Source.UserAgent = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// SetDefaults fills in zero-valued fields.
func (c *Config) SetDefaults() {
	d := &c.Discovery
	if d.Subreddit == "" {
		d.Subreddit = defaultSubreddit
	}
	if d.SortMode == "" {
		d.SortMode = defaultSortMode
	}
	if d.Limit == 0 {
		d.Limit = defaultDiscoveryLimit
	}
	if d.MinCommentsPerThread == 0 {
		d.MinCommentsPerThread = defaultMinComments
	}
	if d.MinSurvivingThreads == 0 {
		d.MinSurvivingThreads = defaultMinSurvivingThreads
	}
	if len(d.ManualThreadURLs) == 0 && !d.AutoDiscovery {
		// Nothing configured at all: default to auto-discovery.
		d.AutoDiscovery = true
	}

	f := &c.Filter
	if f.MinSentences == 0 {
		f.MinSentences = defaultMinSentences
	}
	if f.MinChars == 0 {
		f.MinChars = defaultMinChars
	}
	if f.MaxChars == 0 {
		f.MaxChars = defaultMaxChars
	}
	if f.SimilarityThreshold == 0 {
		f.SimilarityThreshold = defaultSimilarityThreshold
	}
	if f.PreRankMinScore == 0 {
		f.PreRankMinScore = defaultPreRankMinScore
	}

	if c.Classifier.MinScore == 0 {
		c.Classifier.MinScore = defaultClassifierMinScore
	}

	a := &c.Adaptive
	if a.PreRankMinScore == 0 {
		a.PreRankMinScore = defaultRelaxedPreRankMin
	}
	if a.ClassifierMinScore == 0 {
		a.ClassifierMinScore = defaultRelaxedClassifierMin
	}
	if a.TriggerProgress == 0 {
		a.TriggerProgress = defaultRelaxTriggerProgress
	}
	if a.MinCollectedRatio == 0 {
		a.MinCollectedRatio = defaultRelaxCollectedRatio
	}

	col := &c.Collection
	if col.Target == 0 {
		col.Target = defaultTarget
	}
	if col.MaxPerThread == 0 {
		col.MaxPerThread = defaultMaxPerThread
	}
	if col.ScanLimit == 0 {
		col.ScanLimit = defaultScanLimit
	}

	s := &c.Source
	if s.UserAgent == "" {
		s.UserAgent = defaultUserAgent
	}
	if s.RequestTimeout == 0 {
		s.RequestTimeout = defaultRequestTimeoutSec * time.Second
	}
	if s.FetchRetries == 0 {
		s.FetchRetries = defaultFetchRetries
	}
	if s.RequestsPerMinute == 0 {
		s.RequestsPerMinute = defaultRequestsPerMinute
	}

	o := &c.Output
	if o.Dir == "" {
		o.Dir = defaultOutputDir
	}
	if o.DatabaseFile == "" {
		o.DatabaseFile = defaultDatabaseFile
	}
	if o.RejectedThreadFile == "" {
		o.RejectedThreadFile = defaultRejectedFile
	}

	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// Validate rejects configurations that would corrupt a run.
func (c *Config) Validate() error {
	if c.Collection.Target <= 0 {
		return fmt.Errorf("collection target must be positive, got %d", c.Collection.Target)
	}
	if c.Collection.MaxPerThread <= 0 {
		return fmt.Errorf("per-thread cap must be positive, got %d", c.Collection.MaxPerThread)
	}
	if c.Collection.ScanLimit <= 0 {
		return fmt.Errorf("ranked scan limit must be positive, got %d", c.Collection.ScanLimit)
	}
	if c.Filter.MinSentences < 1 {
		return fmt.Errorf("minimum sentence count must be at least 1, got %d", c.Filter.MinSentences)
	}
	if c.Filter.MinChars >= c.Filter.MaxChars {
		return fmt.Errorf("min chars %d must be below max chars %d", c.Filter.MinChars, c.Filter.MaxChars)
	}
	if c.Filter.SimilarityThreshold <= 0 || c.Filter.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be in (0, 1], got %g", c.Filter.SimilarityThreshold)
	}
	if c.Adaptive.PreRankMinScore > c.Filter.PreRankMinScore {
		return fmt.Errorf("relaxed pre-rank minimum %g exceeds strict minimum %g",
			c.Adaptive.PreRankMinScore, c.Filter.PreRankMinScore)
	}
	if c.Adaptive.ClassifierMinScore > c.Classifier.MinScore {
		return fmt.Errorf("relaxed classifier minimum %g exceeds strict minimum %g",
			c.Adaptive.ClassifierMinScore, c.Classifier.MinScore)
	}
	if c.Adaptive.TriggerProgress <= 0 || c.Adaptive.TriggerProgress > 1 {
		return fmt.Errorf("relaxation trigger progress must be in (0, 1], got %g", c.Adaptive.TriggerProgress)
	}
	if c.Adaptive.MinCollectedRatio <= 0 || c.Adaptive.MinCollectedRatio > 1 {
		return fmt.Errorf("relaxation collected ratio must be in (0, 1], got %g", c.Adaptive.MinCollectedRatio)
	}
	if c.Discovery.MinCommentsPerThread < 0 {
		return fmt.Errorf("minimum comments per thread cannot be negative, got %d", c.Discovery.MinCommentsPerThread)
	}
	if !c.Discovery.AutoDiscovery && len(c.Discovery.ManualThreadURLs) == 0 {
		return fmt.Errorf("auto-discovery disabled and no manual thread URLs configured")
	}
	if c.Source.FetchRetries < 1 {
		return fmt.Errorf("fetch retries must be at least 1, got %d", c.Source.FetchRetries)
	}
	return nil
}
