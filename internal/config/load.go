package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads config/<env>.yaml, resolves ${VAR} references, applies
// defaults and validates the result.
func Load(env string) (Config, error) {
	path := resolvePath(env)

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(expandEnvVars(raw), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable,
// defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// resolvePath prefers ./config/<env>.yaml, then the config dir next to
// the source tree (tests run from package dirs), then falls back to
// the cwd-relative path so the read error names it.
func resolvePath(env string) string {
	filename := env + ".yaml"

	candidates := []string{filepath.Join("config", filename)}
	if _, src, _, ok := runtime.Caller(0); ok {
		root := filepath.Dir(filepath.Dir(filepath.Dir(src))) // internal/config -> repo root
		candidates = append(candidates, filepath.Join(root, "config", filename))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return candidates[0]
}

// ${VAR} and ${VAR:-default} references are resolved against the
// process environment before YAML parsing.
var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		name, def, hasDef := strings.Cut(string(ref[2:len(ref)-1]), ":-")
		if val := os.Getenv(name); val != "" {
			return []byte(val)
		}
		if hasDef {
			return []byte(def)
		}
		return nil
	})
}
