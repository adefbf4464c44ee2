package main

import (
	"context"
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdlayout"
	"github.com/alnah/go-mdlayout/internal/assets"
	"github.com/alnah/go-mdlayout/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrReadTemplates    = errors.New("failed to read templates file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrOpenStorage      = errors.New("failed to open template storage")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrTemplateNotFound = errors.New("template not found")
)

// Exit codes for mdlayout CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, storage unavailable
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdlayout.ErrBrowserConnect) ||
		errors.Is(err, mdlayout.ErrPageCreate) ||
		errors.Is(err, mdlayout.ErrPageLoad) ||
		errors.Is(err, mdlayout.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadTemplates) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrOpenStorage) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, mdlayout.ErrValidation) ||
		errors.Is(err, mdlayout.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	return ExitGeneral
}

// isHelp reports whether err is the -h/--help request from a flag set.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func isBrowserConnect(err error) bool {
	return errors.Is(err, mdlayout.ErrBrowserConnect)
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
