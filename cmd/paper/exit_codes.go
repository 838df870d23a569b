package main

import (
	"errors"
	"os"

	paper "github.com/alnah/go-paper"
	"github.com/alnah/go-paper/internal/config"
	"github.com/alnah/go-paper/internal/logging"
)

// Exit codes for the paper CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, input or registration
	ExitIO      = 3 // File not found, permission denied, read/write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrCreateDir) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, paper.ErrBibliographyRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, logging.ErrUnknownLevel) ||
		errors.Is(err, paper.ErrInvalidArgument) ||
		errors.Is(err, paper.ErrEmptyInput) ||
		errors.Is(err, paper.ErrAmbiguousInput) ||
		errors.Is(err, ErrUnsupportedInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
