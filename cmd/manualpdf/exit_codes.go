package main

import (
	"context"
	"errors"
	"os"

	manualpdf "github.com/alnah/go-manualpdf"
	"github.com/alnah/go-manualpdf/internal/assets"
	"github.com/alnah/go-manualpdf/internal/config"
	"github.com/alnah/go-manualpdf/internal/hints"
	"github.com/alnah/go-manualpdf/internal/logging"
)

// Exit codes for manualpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, manualpdf.ErrBrowserConnect) ||
		errors.Is(err, manualpdf.ErrPageCreate) ||
		errors.Is(err, manualpdf.ErrPageLoad) ||
		errors.Is(err, manualpdf.ErrSurfaceUnavailable) ||
		errors.Is(err, manualpdf.ErrImageTimeout) ||
		errors.Is(err, manualpdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadImage) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoManuals) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, manualpdf.ErrEmptyMarkdown) ||
		errors.Is(err, manualpdf.ErrNoImages) ||
		errors.Is(err, manualpdf.ErrInvalidPageSize) ||
		errors.Is(err, manualpdf.ErrInvalidOrientation) ||
		errors.Is(err, manualpdf.ErrInvalidMargin) ||
		errors.Is(err, manualpdf.ErrInvalidMode) ||
		errors.Is(err, manualpdf.ErrInvalidBudget) ||
		errors.Is(err, manualpdf.ErrInvalidBreakLevel) ||
		errors.Is(err, manualpdf.ErrStyleNotFound) ||
		errors.Is(err, manualpdf.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "" when none applies.
// configName is the --config value used to list searched locations.
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, manualpdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, manualpdf.ErrImageTimeout):
		return hints.ForImageTimeout()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, manualpdf.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, manualpdf.ErrNoImages):
		return hints.ForNoImages()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
