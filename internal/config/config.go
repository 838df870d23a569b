package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-paper/internal/fileutil"
	"github.com/alnah/go-paper/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxSelectorLength = 100  // ".abstract", "section.markdown"
	MaxClassesLength  = 200  // Space-separated body classes
	MaxRegions        = 32
	MaxBibliographies = 64
	MaxLogLevelLength = 10
)

const (
	configDirName      = "go-paper"
	defaultLogLevel    = LogNormal
	selectorCharacters = `[A-Za-z][A-Za-z0-9_-]*`
)

// Log levels accepted by log.level.
const (
	LogNone   = "none"
	LogNormal = "normal"
	LogDebug  = "debug"
)

// simpleSelector accepts "tag", ".class" and "tag.class".
var simpleSelector = regexp.MustCompile(`^(` + selectorCharacters + `)?(\.` + selectorCharacters + `)?$`)

// Config holds all configuration for document conversion.
type Config struct {
	Input        InputConfig        `yaml:"input"`
	Output       OutputConfig       `yaml:"output"`
	Bibliography BibliographyConfig `yaml:"bibliography"`
	Markdown     MarkdownConfig     `yaml:"markdown"`
	Document     DocumentConfig     `yaml:"document"`
	Code         CodeConfig         `yaml:"code"`
	Log          LogConfig          `yaml:"log"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// BibliographyConfig lists shared bibliography files, registered before any
// in-document snippet.
type BibliographyConfig struct {
	Files []string `yaml:"files"`
}

// MarkdownConfig defines Markdown region conversion.
type MarkdownConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Regions   []string `yaml:"regions"`   // Empty = body, header, .abstract, .main, .markdown
	Highlight bool     `yaml:"highlight"` // Chroma classes on fenced code
}

// DocumentConfig defines document-level adjustments.
type DocumentConfig struct {
	Title    bool   `yaml:"title"`    // Take the title from the first h1 when missing
	Classes  string `yaml:"classes"`  // Added to <body>
	Numbered bool   `yaml:"numbered"` // Adds the "numbered" body class
}

// CodeConfig defines code block handling.
type CodeConfig struct {
	Figures bool `yaml:"figures"` // body > pre > code becomes figure > pre
	Trim    bool `yaml:"trim"`    // Strip common indentation from <pre>
}

// LogConfig defines CLI logging.
type LogConfig struct {
	Level string `yaml:"level"` // none, normal (default), debug
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	// Validate bibliography files
	if len(c.Bibliography.Files) > MaxBibliographies {
		return fmt.Errorf("%w: bibliography.files: %d files, max %d", ErrInvalidValue, len(c.Bibliography.Files), MaxBibliographies)
	}
	for i, f := range c.Bibliography.Files {
		field := fmt.Sprintf("bibliography.files[%d]", i)
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: %s: empty path", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field, f, MaxPathLength); err != nil {
			return err
		}
	}

	// Validate markdown regions
	if len(c.Markdown.Regions) > MaxRegions {
		return fmt.Errorf("%w: markdown.regions: %d selectors, max %d", ErrInvalidValue, len(c.Markdown.Regions), MaxRegions)
	}
	for i, sel := range c.Markdown.Regions {
		field := fmt.Sprintf("markdown.regions[%d]", i)
		if err := validateFieldLength(field, sel, MaxSelectorLength); err != nil {
			return err
		}
		if sel == "" || !simpleSelector.MatchString(sel) {
			return fmt.Errorf("%w: %s: %q (must be tag, .class or tag.class)", ErrInvalidValue, field, sel)
		}
	}

	if err := validateFieldLength("document.classes", c.Document.Classes, MaxClassesLength); err != nil {
		return err
	}

	// Validate log level
	if err := validateFieldLength("log.level", c.Log.Level, MaxLogLevelLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "", LogNone, LogNormal, LogDebug:
		// valid
	default:
		return fmt.Errorf("%w: log.level: %q (must be none, normal, or debug)", ErrInvalidValue, c.Log.Level)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file: every
// document stage on, default Markdown regions, normal logging.
func DefaultConfig() *Config {
	return &Config{
		Input:    InputConfig{DefaultDir: ""},
		Output:   OutputConfig{DefaultDir: ""},
		Markdown: MarkdownConfig{Enabled: true, Highlight: true},
		Document: DocumentConfig{Title: true},
		Code:     CodeConfig{Figures: true, Trim: true},
		Log:      LogConfig{Level: defaultLogLevel},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-paper/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
