package main

import (
	"errors"
	"os"

	onemath "github.com/alnah/go-onemath"
	"github.com/alnah/go-onemath/internal/config"
)

// Exit codes for the onemath CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All pages rendered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or style
	ExitIO      = 3 // File not found, permission denied
	ExitMath    = 4 // Equation could not be decoded or rendered
)

// exitCodeFor returns the exit code for an error.
// It relies on errors.Is, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, onemath.ErrMathRender) ||
		errors.Is(err, onemath.ErrInvalidEquationBlock) ||
		errors.Is(err, onemath.ErrInvalidMathObject) {
		return ExitMath
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) {
		return ExitIO
	}

	if errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, onemath.ErrEmptyMarkdown) ||
		errors.Is(err, onemath.ErrStyleNotFound) ||
		errors.Is(err, onemath.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
