package main

// Notes:
// - exitCodeFor: we test every sentinel error mapped to a code, plus wrapped
//   and batch-combined errors to verify the errors.Is chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general,
//   2=usage) and custom codes below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	paper "github.com/alnah/go-paper"
	"github.com/alnah/go-paper/internal/config"
	"github.com/alnah/go-paper/internal/logging"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"create dir", ErrCreateDir, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"bibliography read", paper.ErrBibliographyRead, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"unknown log level", logging.ErrUnknownLevel, ExitUsage},
		{"invalid registration", paper.ErrInvalidArgument, ExitUsage},
		{"empty input", paper.ErrEmptyInput, ExitUsage},
		{"ambiguous input", paper.ErrAmbiguousInput, ExitUsage},
		{"unsupported input", ErrUnsupportedInput, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"wrapped registration", fmt.Errorf("library snippet 2: %w", paper.ErrInvalidArgument), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"html conversion", paper.ErrHTMLConversion, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor_BatchError(t *testing.T) {
	t.Parallel()

	err := combineErrors([]ConversionResult{
		{InputPath: "a.html", Err: fmt.Errorf("snippet: %w", paper.ErrInvalidArgument)},
	})
	if got := exitCodeFor(err); got != ExitUsage {
		t.Errorf("exitCodeFor(batch) = %d, want %d", got, ExitUsage)
	}

	// I/O wins when a batch mixes failures
	err = combineErrors([]ConversionResult{
		{InputPath: "a.html", Err: fmt.Errorf("snippet: %w", paper.ErrInvalidArgument)},
		{InputPath: "b.html", Err: ErrWriteOutput},
	})
	if got := exitCodeFor(err); got != ExitIO {
		t.Errorf("exitCodeFor(mixed batch) = %d, want %d", got, ExitIO)
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("conventional codes changed: %d %d %d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell reserved codes", code)
		}
	}
}
