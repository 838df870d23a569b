package main

// Notes:
// - loadEnvConfig: we test parsing of every PAPER_* variable, including
//   invalid worker values being ignored.
// - applyEnvConfig: we test that env fills only what the config left unset.
// - warnUnknownEnvVars: we test typo detection.
// These tests use t.Setenv and therefore cannot run in parallel.

import (
	"bytes"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/alnah/go-paper/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment parsing
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("PAPER_CONFIG", "work")
	t.Setenv("PAPER_INPUT_DIR", "./docs")
	t.Setenv("PAPER_OUTPUT_DIR", "./out")
	t.Setenv("PAPER_BIB", "a.yaml"+string(os.PathListSeparator)+" b.json ")
	t.Setenv("PAPER_WORKERS", "3")
	t.Setenv("PAPER_LOG_LEVEL", "debug")

	got := loadEnvConfig()
	want := &envConfig{
		ConfigPath:     "work",
		InputDir:       "./docs",
		OutputDir:      "./out",
		Bibliographies: []string{"a.yaml", "b.json"},
		Workers:        3,
		LogLevel:       "debug",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("loadEnvConfig() = %+v, want %+v", got, want)
	}
}

func TestLoadEnvConfig_InvalidWorkers(t *testing.T) {
	for _, v := range []string{"abc", "0", "-2"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("PAPER_WORKERS", v)
			if got := loadEnvConfig().Workers; got != 0 {
				t.Errorf("Workers = %d, want 0", got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Precedence
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	env := &envConfig{
		InputDir:       "./env-in",
		OutputDir:      "./env-out",
		Bibliographies: []string{"env.yaml"},
		LogLevel:       "debug",
	}

	t.Run("fills defaults", func(t *testing.T) {
		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Input.DefaultDir != "./env-in" || cfg.Output.DefaultDir != "./env-out" {
			t.Errorf("dirs = %q, %q", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
		if !reflect.DeepEqual(cfg.Bibliography.Files, []string{"env.yaml"}) {
			t.Errorf("Files = %v", cfg.Bibliography.Files)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %q", cfg.Log.Level)
		}
	})

	t.Run("config wins", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Input.DefaultDir = "./cfg-in"
		cfg.Bibliography.Files = []string{"cfg.yaml"}
		cfg.Log.Level = config.LogNone
		applyEnvConfig(env, cfg)

		if cfg.Input.DefaultDir != "./cfg-in" {
			t.Errorf("Input.DefaultDir = %q", cfg.Input.DefaultDir)
		}
		if !reflect.DeepEqual(cfg.Bibliography.Files, []string{"cfg.yaml"}) {
			t.Errorf("Files = %v", cfg.Bibliography.Files)
		}
		if cfg.Log.Level != config.LogNone {
			t.Errorf("Log.Level = %q", cfg.Log.Level)
		}
	})
}

func TestResolveWorkersWithEnv(t *testing.T) {
	env := &envConfig{Workers: 6}

	if got := resolveWorkersWithEnv(2, env); got != 2 {
		t.Errorf("flag: got %d, want 2", got)
	}
	if got := resolveWorkersWithEnv(0, env); got != 6 {
		t.Errorf("env: got %d, want 6", got)
	}
}

func TestResolveConfigName(t *testing.T) {
	env := &envConfig{ConfigPath: "env"}

	if got := resolveConfigName("flag", env); got != "flag" {
		t.Errorf("flag: got %q", got)
	}
	if got := resolveConfigName("", env); got != "env" {
		t.Errorf("env: got %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("PAPER_BIBLIO", "x")
	t.Setenv("PAPER_BIB", "y")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "PAPER_BIBLIO") {
		t.Errorf("missing warning for PAPER_BIBLIO: %q", out)
	}
	if strings.Contains(out, "PAPER_BIB ") || strings.Contains(out, "PAPER_BIB\n") {
		t.Errorf("known variable reported: %q", out)
	}
}
