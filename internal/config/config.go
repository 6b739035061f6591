// Package config loads the knowdex CLI configuration from per-environment
// YAML files with ${VAR} expansion.
package config

import "fmt"

// Config holds the knowdex CLI configuration.
type Config struct {
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Completion CompletionConfig `yaml:"completion"`
	Knowledge  KnowledgeConfig  `yaml:"knowledge"`
	Cache      CacheConfig      `yaml:"cache"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	Provider   string `yaml:"provider"` // metrics label, default "openai"
}

// CompletionConfig holds completion provider settings for topic naming.
type CompletionConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Provider    string  `yaml:"provider"`
}

// KnowledgeConfig holds knowledge base construction settings.
type KnowledgeConfig struct {
	ContextNeighbors           int     `yaml:"context_neighbors"`
	ContextSimilarityThreshold float64 `yaml:"context_similarity_threshold"`
	MinTopicSize               int     `yaml:"min_topic_size"`
}

// CacheConfig holds the optional Redis embedding cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	TTLHours         int      `yaml:"ttl_hours"` // 0 = no expiry
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// MetricsConfig holds the Prometheus listener settings.
type MetricsConfig struct {
	Port int `yaml:"port"` // 0 = disabled
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-ada-002"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Completion.Model == "" {
		c.Completion.Model = "gpt-4o-mini"
	}
	if c.Completion.Provider == "" {
		c.Completion.Provider = "openai"
	}
	if c.Completion.APIKey == "" {
		c.Completion.APIKey = c.Embedding.APIKey
	}
	if c.Knowledge.ContextNeighbors <= 0 {
		c.Knowledge.ContextNeighbors = 4
	}
	if c.Knowledge.ContextSimilarityThreshold <= 0 {
		c.Knowledge.ContextSimilarityThreshold = 0.2
	}
	if c.Knowledge.MinTopicSize <= 0 {
		c.Knowledge.MinTopicSize = 2
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Embedding.Dimensions < 0 {
		return fmt.Errorf("embedding.dimensions must be >= 0, got %d", c.Embedding.Dimensions)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache is enabled")
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}
	return nil
}
