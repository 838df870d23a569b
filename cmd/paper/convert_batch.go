package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.uber.org/multierr"

	paper "github.com/alnah/go-paper"
	"github.com/alnah/go-paper/internal/fileutil"
	"github.com/alnah/go-paper/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrCreateDir   = errors.New("failed to create output directory")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input paper.Input) (*paper.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*paper.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	References int
	Unresolved []string
	Err        error
	Duration   time.Duration
}

// batchError reports failed conversions. errors.Is sees every underlying
// failure through the combined error.
type batchError struct {
	failed int
	err    error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() error {
	return e.err
}

// resolveWorkers determines the worker count.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// convertBatch processes files concurrently with a fixed number of workers
// sharing one converter. Results keep the order of files.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadInput, err)
		result.Duration = time.Since(start)
		return result
	}

	input := paper.Input{HTML: string(content)}
	if f.Kind == fileutil.KindMarkdown {
		input = paper.Input{Markdown: string(content)}
	}

	converted, err := conv.Convert(ctx, input)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.References = converted.References
	result.Unresolved = converted.Unresolved

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrCreateDir, err)
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, converted.HTML, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded  int
	Failed     int
	Unresolved int
}

// countResults tallies succeeded and failed conversions, and unresolved
// citations across successful ones.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Unresolved += len(r.Unresolved)
	}
	return summary
}

// combineErrors returns a *batchError over every failed result, or nil.
func combineErrors(results []ConversionResult) error {
	var errs error
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.InputPath, r.Err))
		}
	}
	if errs == nil {
		return nil
	}
	return &batchError{failed: failed, err: errs}
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d references, %v)\n",
				r.InputPath, r.OutputPath, r.References, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if len(r.Unresolved) > 0 {
			fmt.Fprintf(env.Stdout, "  %d unresolved citation(s)%s\n", len(r.Unresolved), hints.ForUnresolved(r.Unresolved))
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed", summary.Succeeded, summary.Failed)
		if summary.Unresolved > 0 {
			fmt.Fprintf(env.Stdout, ", %d unresolved citation(s)", summary.Unresolved)
		}
		fmt.Fprintln(env.Stdout)
	}

	return summary.Failed
}

// hintFor returns an actionable hint for a per-file failure, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, paper.ErrInvalidArgument):
		return hints.ForInvalidRegistration()
	case errors.Is(err, ErrCreateDir), errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
