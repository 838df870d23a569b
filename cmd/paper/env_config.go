package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-paper/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "PAPER_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath     string   // PAPER_CONFIG: config file name or path
	InputDir       string   // PAPER_INPUT_DIR: default input directory
	OutputDir      string   // PAPER_OUTPUT_DIR: default output directory
	Bibliographies []string // PAPER_BIB: bibliography files, os.PathListSeparator separated
	Workers        int      // PAPER_WORKERS: parallel workers
	LogLevel       string   // PAPER_LOG_LEVEL: none, normal, debug
}

// knownEnvVars lists valid PAPER_* environment variables.
var knownEnvVars = map[string]bool{
	"PAPER_CONFIG":     true,
	"PAPER_INPUT_DIR":  true,
	"PAPER_OUTPUT_DIR": true,
	"PAPER_BIB":        true,
	"PAPER_WORKERS":    true,
	"PAPER_LOG_LEVEL":  true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PAPER_CONFIG"),
		InputDir:   os.Getenv("PAPER_INPUT_DIR"),
		OutputDir:  os.Getenv("PAPER_OUTPUT_DIR"),
		LogLevel:   os.Getenv("PAPER_LOG_LEVEL"),
	}

	for _, p := range filepath.SplitList(os.Getenv("PAPER_BIB")) {
		if p = strings.TrimSpace(p); p != "" {
			cfg.Bibliographies = append(cfg.Bibliographies, p)
		}
	}

	// Invalid or non-positive values are ignored
	if workers := os.Getenv("PAPER_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized PAPER_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills config values the file left empty.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags). The log level is a
// default rather than empty, so PAPER_LOG_LEVEL applies while the config
// keeps the default level.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if len(env.Bibliographies) > 0 && len(cfg.Bibliography.Files) == 0 {
		cfg.Bibliography.Files = append([]string(nil), env.Bibliographies...)
	}
	if env.LogLevel != "" && cfg.Log.Level == config.LogNormal {
		cfg.Log.Level = env.LogLevel
	}
}

// resolveWorkersWithEnv returns the flag value, or PAPER_WORKERS when the
// flag is left at 0 (auto).
func resolveWorkersWithEnv(flagWorkers int, env *envConfig) int {
	if flagWorkers != 0 {
		return flagWorkers
	}
	return env.Workers
}

// resolveConfigName returns the config to load: --config first, then
// PAPER_CONFIG. Empty means no config file.
func resolveConfigName(flagConfig string, env *envConfig) string {
	if flagConfig != "" {
		return flagConfig
	}
	return env.ConfigPath
}
