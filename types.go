package manualpdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-manualpdf/internal/assetindex"
	"github.com/alnah/go-manualpdf/internal/compose"
	"github.com/alnah/go-manualpdf/internal/paginate"
)

// File is a named byte buffer: a screenshot or a logo.
type File = assetindex.File

// CostTable holds the per-element height estimates used in height mode.
// Zero fields keep the defaults.
type CostTable = paginate.CostTable

// DefaultCosts returns the built-in height estimates.
func DefaultCosts() CostTable {
	return paginate.DefaultCosts()
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// Pagination modes.
const (
	ModeHeight  = string(paginate.ModeHeight)
	ModeHeading = string(paginate.ModeHeading)
)

// referenceContentHeight is the body height, in inches, that
// paginate.DefaultBudget covers.
const referenceContentHeight = 10.0

// pageChromeHeight is the height, in inches, the page shell spends on the
// header (0.5in plus 0.15in gap) and the footer line with its gap.
const pageChromeHeight = 1.0

// PageSettings configures physical page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// geometry converts p to the composer's page box.
func (p *PageSettings) geometry() compose.Geometry {
	if p == nil {
		p = DefaultPageSettings()
	}
	return compose.NewGeometry(p.Size, p.Orientation, p.Margin)
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Pagination configures how rendered content is split into pages.
type Pagination struct {
	Mode        string     // "height" (default) or "heading"
	Budget      float64    // CSS pixels per page, 0 = scaled from the page size
	BreakBefore []int      // heading levels that start a page, nil = [2]
	Costs       *CostTable // height estimates, nil = defaults
}

// Validate checks that pagination settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *Pagination) Validate() error {
	if p == nil {
		return nil
	}
	if _, err := paginate.ParseMode(p.Mode); err != nil {
		return err
	}
	return p.policy(compose.DefaultGeometry()).Validate()
}

// policy builds the paginator policy for the given page box.
// A zero budget scales paginate.DefaultBudget to the usable page height.
func (p *Pagination) policy(g compose.Geometry) paginate.Policy {
	policy := paginate.DefaultPolicy()
	policy.Budget = scaledBudget(g)
	if p == nil {
		return policy
	}

	if mode, err := paginate.ParseMode(p.Mode); err == nil {
		policy.Mode = mode
	}
	if p.Budget != 0 {
		policy.Budget = p.Budget
	}
	if p.BreakBefore != nil {
		policy.BreakLevels = append([]int(nil), p.BreakBefore...)
	}
	if p.Costs != nil {
		policy.Costs = p.Costs.Merge(paginate.DefaultCosts())
	}
	return policy
}

// scaledBudget returns the page budget for the body box of g: the page
// height less margins, header and footer.
func scaledBudget(g compose.Geometry) float64 {
	usable := g.Height - 2*g.Margin - pageChromeHeight
	if usable <= 0 {
		return paginate.DefaultBudget
	}
	return paginate.DefaultBudget * usable / referenceContentHeight
}

// Input contains conversion parameters.
//
// Markdown, Images and Logo are read by Convert only. Preview, Layout and
// Export take their content from a session View and use the remaining
// fields as per-render settings.
type Input struct {
	Markdown        string        // Markdown content (required)
	Images          []File        // Screenshots, referenced by base filename
	Logo            *File         // Header logo (optional)
	CSS             string        // Custom CSS appended after the style (optional)
	Title           string        // Document title (optional)
	Page            *PageSettings // Page dimensions (optional)
	Pagination      *Pagination   // Overrides the converter's pagination (optional)
	DisableAutoLink bool          // Never insert screenshot references
	RequireImages   bool          // Fail with ErrNoImages when no screenshot is available
	HTMLOnly        bool          // Skip PDF generation
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	HTML       []byte   // Paginated HTML document
	PDF        []byte   // PDF bytes (nil when HTMLOnly)
	Pages      int      // Number of page shells
	Unresolved []string // Image references with no matching screenshot
	AutoLinked bool     // True when screenshot references were inserted
	Warnings   []string // Non-fatal problems, in the order they occurred
}

// Preview is a standalone, unpaginated rendering of a session.
type Preview struct {
	HTML       string   // Standalone HTML document
	Fragment   string   // Body markup, input to pagination
	Markdown   string   // Markdown after auto-linking
	AutoLinked bool     // True when screenshot references were inserted
	Unresolved []string // Image references with no matching screenshot
	Warnings   []string // Non-fatal problems
}

// Document is a paginated rendering, printed when produced by Export.
type Document struct {
	HTML    string   // Paginated HTML document
	PDF     []byte   // PDF bytes, nil when produced by Layout
	Pages   int      // Number of page shells
	Preview *Preview // The rendering the pages were cut from
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout      time.Duration
	styleInput   string
	assetPath    string
	pagination   *Pagination
	settleDelay  time.Duration
	imageTimeout time.Duration
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 2 * time.Minute
