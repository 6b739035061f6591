package config

import (
	"os"
	"testing"
)

func TestValidate_CacheEnabledWithoutAddrs(t *testing.T) {
	cfg := Config{
		Cache: CacheConfig{Enabled: true},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for enabled cache without addrs")
	}

	expected := "cache.addrs is required when cache is enabled"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_NegativeDimensions(t *testing.T) {
	cfg := Config{
		Embedding: EmbeddingConfig{Dimensions: -1},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative embedding dimensions")
	}
}

func TestValidate_InvalidMetricsPort(t *testing.T) {
	cfg := Config{
		Metrics: MetricsConfig{Port: 70000},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for out-of-range metrics port")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Embedding.Model != "text-embedding-ada-002" {
		t.Errorf("expected embedding model 'text-embedding-ada-002', got %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("expected embedding provider 'openai', got %q", cfg.Embedding.Provider)
	}
	if cfg.Completion.Model != "gpt-4o-mini" {
		t.Errorf("expected completion model 'gpt-4o-mini', got %q", cfg.Completion.Model)
	}
	if cfg.Knowledge.ContextNeighbors != 4 {
		t.Errorf("expected ContextNeighbors=4, got %d", cfg.Knowledge.ContextNeighbors)
	}
	if cfg.Knowledge.ContextSimilarityThreshold != 0.2 {
		t.Errorf("expected ContextSimilarityThreshold=0.2, got %v", cfg.Knowledge.ContextSimilarityThreshold)
	}
	if cfg.Knowledge.MinTopicSize != 2 {
		t.Errorf("expected MinTopicSize=2, got %d", cfg.Knowledge.MinTopicSize)
	}
	if cfg.Cache.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Cache.ReadinessTimeout)
	}
}

func TestApplyDefaults_CompletionKeyFallsBackToEmbeddingKey(t *testing.T) {
	cfg := Config{
		Embedding: EmbeddingConfig{APIKey: "shared-key"},
	}
	cfg.ApplyDefaults()

	if cfg.Completion.APIKey != "shared-key" {
		t.Errorf("expected completion api key 'shared-key', got %q", cfg.Completion.APIKey)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Embedding:  EmbeddingConfig{Model: "text-embedding-3-small", Provider: "nebius"},
		Completion: CompletionConfig{Model: "gpt-4o", APIKey: "own-key"},
		Knowledge:  KnowledgeConfig{ContextNeighbors: 8, ContextSimilarityThreshold: 0.5, MinTopicSize: 5},
	}
	cfg.ApplyDefaults()

	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected embedding model 'text-embedding-3-small', got %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Provider != "nebius" {
		t.Errorf("expected embedding provider 'nebius', got %q", cfg.Embedding.Provider)
	}
	if cfg.Completion.APIKey != "own-key" {
		t.Errorf("expected completion api key 'own-key', got %q", cfg.Completion.APIKey)
	}
	if cfg.Knowledge.ContextNeighbors != 8 {
		t.Errorf("expected ContextNeighbors=8, got %d", cfg.Knowledge.ContextNeighbors)
	}
	if cfg.Knowledge.ContextSimilarityThreshold != 0.5 {
		t.Errorf("expected ContextSimilarityThreshold=0.5, got %v", cfg.Knowledge.ContextSimilarityThreshold)
	}
	if cfg.Knowledge.MinTopicSize != 5 {
		t.Errorf("expected MinTopicSize=5, got %d", cfg.Knowledge.MinTopicSize)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("KNOWDEX_TEST_KEY", "sk-secret")
	defer os.Unsetenv("KNOWDEX_TEST_KEY")

	in := []byte("api_key: ${KNOWDEX_TEST_KEY}\nmodel: ${KNOWDEX_TEST_MODEL:-text-embedding-ada-002}\n")
	out := string(expandEnvVars(in))

	expected := "api_key: sk-secret\nmodel: text-embedding-ada-002\n"
	if out != expected {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, expected)
	}
}

func TestExpandEnvVars_EnvOverridesDefault(t *testing.T) {
	os.Setenv("KNOWDEX_TEST_MODEL", "text-embedding-3-large")
	defer os.Unsetenv("KNOWDEX_TEST_MODEL")

	in := []byte("model: ${KNOWDEX_TEST_MODEL:-text-embedding-ada-002}")
	out := string(expandEnvVars(in))

	if out != "model: text-embedding-3-large" {
		t.Errorf("expected env value to win over default, got %q", out)
	}
}
