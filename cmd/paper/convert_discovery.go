package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/alnah/go-paper/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrUnsupportedInput   = errors.New("file must have .html, .htm, .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxWorkers caps --workers.
const maxWorkers = 32

// Output file suffixes.
const (
	htmlOutputSuffix     = ".paper.html"
	markdownOutputSuffix = ".html"
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	Kind       int // fileutil.KindHTML or fileutil.KindMarkdown
}

// discoverFiles finds all documents to convert, in natural path order.
// Files already produced by a previous run (*.paper.html) are skipped when
// walking a directory.
func discoverFiles(inputPath, outputPath string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		kind := fileutil.DocumentKind(inputPath)
		if kind == fileutil.KindUnknown {
			return nil, fmt.Errorf("%w: got %q", ErrUnsupportedInput, filepath.Ext(inputPath))
		}
		outPath := resolveOutputPath(inputPath, outputPath, "", kind)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath, Kind: kind}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || isGeneratedOutput(path) {
			return nil
		}
		kind := fileutil.DocumentKind(path)
		if kind == fileutil.KindUnknown {
			return nil
		}
		outPath := resolveOutputPath(path, outputPath, inputPath, kind)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		return natural.Less(files[i].InputPath, files[j].InputPath)
	})
	return files, nil
}

// resolveOutputPath determines the output path for a document.
// HTML documents get a ".paper.html" suffix so the source is never
// overwritten; Markdown documents get ".html". An output path ending in
// ".html" names the file itself (single-file input only).
func resolveOutputPath(inputPath, outputPath, baseInputDir string, kind int) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext) + outputSuffix(kind)

	if outputPath == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir == "" && strings.EqualFold(filepath.Ext(outputPath), ".html") {
		return outputPath
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputPath, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputPath, base)
}

// outputSuffix returns the file suffix for a document kind.
func outputSuffix(kind int) string {
	if kind == fileutil.KindMarkdown {
		return markdownOutputSuffix
	}
	return htmlOutputSuffix
}

// isGeneratedOutput reports whether path looks like a previous run's output.
func isGeneratedOutput(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), htmlOutputSuffix)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
