package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	paper "github.com/alnah/go-paper"
	"github.com/alnah/go-paper/internal/config"
	"github.com/alnah/go-paper/internal/fileutil"
	"github.com/alnah/go-paper/internal/hints"
	"github.com/alnah/go-paper/internal/logging"
)

// ErrNoInput indicates that neither an argument nor input.defaultDir named
// something to convert, or that a directory held no documents.
var ErrNoInput = errors.New("no input specified")

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()

	// Validate worker count early
	workers := resolveWorkersWithEnv(flags.workers, envCfg)
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := loadConfig(resolveConfigName(flags.common.config, envCfg), env)
	if err != nil {
		return err
	}

	// Environment fills gaps, CLI flags win
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, env.Stdout, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputPath := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputPath)
	if err != nil {
		if errors.Is(err, ErrUnsupportedInput) {
			return fmt.Errorf("discovering files: %w%s", err, hints.ForUnsupportedInput())
		}
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no documents found in %s", ErrNoInput, inputPath)
	}

	conv, err := newConverter(cfg, logger)
	if err != nil {
		return err
	}

	n := resolveWorkers(workers)
	logger.Debug("converting", zap.Int("files", len(files)), zap.Int("workers", n))

	results := convertBatch(ctx, conv, files, n)
	printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)

	return combineErrors(results)
}

// loadConfig loads the named config, or copies env.Config when name is
// empty.
func loadConfig(name string, env *Environment) (*config.Config, error) {
	if name == "" {
		base := config.DefaultConfig()
		if env.Config != nil {
			c := *env.Config
			c.Bibliography.Files = append([]string(nil), env.Config.Bibliography.Files...)
			c.Markdown.Regions = append([]string(nil), env.Config.Markdown.Regions...)
			base = &c
		}
		return base, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configCandidates(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// configCandidates lists where a config name is looked up.
func configCandidates(name string) []string {
	if fileutil.IsFilePath(name) {
		return []string{name}
	}
	paths := []string{name + ".yaml", name + ".yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-paper", name+".yaml"))
	}
	return paths
}

// mergeFlags merges CLI flags into config. CLI values override config
// values; bibliography files are added after the configured ones.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	cfg.Bibliography.Files = append(cfg.Bibliography.Files, flags.bibliographies...)

	// Document flags
	if flags.document.classes != "" {
		cfg.Document.Classes = flags.document.classes
	}
	if flags.document.numbered {
		cfg.Document.Numbered = true
	}

	// Stage flags
	if len(flags.stages.regions) > 0 {
		cfg.Markdown.Regions = append([]string(nil), flags.stages.regions...)
	}
	if flags.stages.noMarkdown {
		cfg.Markdown.Enabled = false
	}
	if flags.stages.noHighlight {
		cfg.Markdown.Highlight = false
	}
	if flags.stages.noTitle {
		cfg.Document.Title = false
	}
	if flags.stages.noFigures {
		cfg.Code.Figures = false
	}
	if flags.stages.noTrim {
		cfg.Code.Trim = false
	}

	// Output control; quiet wins over verbose
	if flags.common.verbose {
		cfg.Log.Level = config.LogDebug
	}
	if flags.common.quiet {
		cfg.Log.Level = config.LogNone
	}
}

// newConverter builds a converter from the merged config. Bibliography
// files are read here, once for the whole batch.
func newConverter(cfg *config.Config, logger *zap.Logger) (*paper.Converter, error) {
	opts := []paper.Option{
		paper.WithLogger(logger),
		paper.WithMarkdown(cfg.Markdown.Enabled),
		paper.WithMarkdownRegions(cfg.Markdown.Regions...),
		paper.WithHighlighting(cfg.Markdown.Highlight),
		paper.WithTitle(cfg.Document.Title),
		paper.WithDocument(&paper.Document{
			Classes:  cfg.Document.Classes,
			Numbered: cfg.Document.Numbered,
		}),
		paper.WithCodeFigures(cfg.Code.Figures),
		paper.WithPreTrim(cfg.Code.Trim),
	}
	for _, path := range cfg.Bibliography.Files {
		opts = append(opts, paper.WithBibliographyFile(path))
	}

	conv, err := paper.NewConverter(opts...)
	if err != nil {
		if errors.Is(err, paper.ErrBibliographyRead) || errors.Is(err, paper.ErrInvalidArgument) {
			return nil, fmt.Errorf("%w%s", err, hints.ForBibliography(firstMissing(cfg.Bibliography.Files)))
		}
		return nil, err
	}
	return conv, nil
}

// firstMissing returns the first path that does not exist, or "".
func firstMissing(paths []string) string {
	for _, p := range paths {
		if !fileutil.FileExists(p) {
			return p
		}
	}
	return ""
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output path from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
