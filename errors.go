package manualpdf

import (
	"errors"

	"github.com/alnah/go-manualpdf/internal/assetindex"
	"github.com/alnah/go-manualpdf/internal/assets"
	"github.com/alnah/go-manualpdf/internal/export"
	"github.com/alnah/go-manualpdf/internal/paginate"
	"github.com/alnah/go-manualpdf/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrNoImages       = errors.New("no screenshots supplied")
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Pagination validation errors.
	ErrInvalidMode       = paginate.ErrInvalidMode
	ErrInvalidBudget     = paginate.ErrInvalidBudget
	ErrInvalidBreakLevel = paginate.ErrInvalidBreakLevel

	// Screenshot and logo decoding errors.
	ErrNotImage     = assetindex.ErrNotImage
	ErrEmptyAsset   = assetindex.ErrEmptyAsset
	ErrDecodeFailed = assetindex.ErrDecodeFailed

	// Export errors.
	ErrExportInProgress   = export.ErrExportInProgress
	ErrSurfaceUnavailable = export.ErrSurfaceUnavailable
	ErrBrowserConnect     = export.ErrBrowserConnect
	ErrPageCreate         = export.ErrPageCreate
	ErrPageLoad           = export.ErrContentLoad
	ErrImageTimeout       = export.ErrImageTimeout
	ErrPDFGeneration      = export.ErrPrint

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
