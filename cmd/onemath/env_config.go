package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-onemath/internal/config"
)

const envPrefix = "ONEMATH_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // ONEMATH_CONFIG
	Style      string        // ONEMATH_STYLE
	AssetPath  string        // ONEMATH_ASSET_PATH
	Timeout    time.Duration // ONEMATH_TIMEOUT
	InputDir   string        // ONEMATH_INPUT_DIR
	OutputDir  string        // ONEMATH_OUTPUT_DIR
	Workers    int           // ONEMATH_WORKERS
	LogLevel   string        // ONEMATH_LOG_LEVEL
}

// knownEnvVars lists valid ONEMATH_* variables.
var knownEnvVars = map[string]bool{
	"ONEMATH_CONFIG":     true,
	"ONEMATH_STYLE":      true,
	"ONEMATH_ASSET_PATH": true,
	"ONEMATH_TIMEOUT":    true,
	"ONEMATH_INPUT_DIR":  true,
	"ONEMATH_OUTPUT_DIR": true,
	"ONEMATH_WORKERS":    true,
	"ONEMATH_LOG_LEVEL":  true,
}

// loadEnvConfig reads ONEMATH_* variables. Malformed numbers and durations
// are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("ONEMATH_CONFIG"),
		Style:      getenv("ONEMATH_STYLE"),
		AssetPath:  getenv("ONEMATH_ASSET_PATH"),
		InputDir:   getenv("ONEMATH_INPUT_DIR"),
		OutputDir:  getenv("ONEMATH_OUTPUT_DIR"),
		LogLevel:   getenv("ONEMATH_LOG_LEVEL"),
	}

	if timeout := getenv("ONEMATH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := getenv("ONEMATH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars reports ONEMATH_* variables nobody reads, usually typos.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills config fields the file left empty.
// Precedence: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.CSS.Style == "" {
		cfg.CSS.Style = env.Style
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Workers > 0 && cfg.Render.Workers == 0 {
		cfg.Render.Workers = env.Workers
	}
	if env.Timeout > 0 && cfg.Render.Timeout == "" {
		cfg.Render.Timeout = env.Timeout.String()
	}
	if env.LogLevel != "" && cfg.Log.Level == "" {
		cfg.Log.Level = env.LogLevel
	}
}
