package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags holds where screenshots and the logo come from.
type inputFlags struct {
	images string
	logo   string
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// paginationFlags holds page splitting flags.
type paginationFlags struct {
	mode        string
	budget      float64
	breakBefore string
}

// linkFlags holds screenshot auto-linking flags.
type linkFlags struct {
	disabled      bool
	requireImages bool
}

// assetFlags holds asset-related flags (CSS, custom asset path).
type assetFlags struct {
	style     string // Name, path, or inline CSS
	assetPath string // Override asset directory
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	input      inputFlags
	document   documentFlags
	page       pageFlags
	pagination paginationFlags
	link       linkFlags
	assets     assetFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addInputFlags adds screenshot and logo flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.images, "images", "i", "", "screenshot directory (default: the manual's directory)")
	fs.StringVar(&f.logo, "logo", "", "header logo image (default: logo.* beside the manual)")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (default: file name)")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addPaginationFlags adds pagination flags to a FlagSet.
func addPaginationFlags(fs *flag.FlagSet, f *paginationFlags) {
	fs.StringVar(&f.mode, "mode", "", "pagination mode: height, heading")
	fs.Float64Var(&f.budget, "budget", 0, "page height budget in CSS pixels (0 = from page size)")
	fs.StringVar(&f.breakBefore, "break-before", "", "headings that start a page: h1,h2,h3")
}

// addLinkFlags adds auto-linking flags to a FlagSet.
func addLinkFlags(fs *flag.FlagSet, f *linkFlags) {
	fs.BoolVar(&f.disabled, "no-autolink", false, "never insert screenshot references")
	fs.BoolVar(&f.requireImages, "require-images", false, "fail when no screenshot is found")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "output HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
func newConvertFlagSet(stderr io.Writer) (*flag.FlagSet, *convertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-manual timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addDocumentFlags(fs, &f.document)
	addPageFlags(fs, &f.page)
	addPaginationFlags(fs, &f.pagination)
	addLinkFlags(fs, &f.link)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printConvertUsage(stderr) }
	return fs, f
}

// parseConvertFlags parses convert command flags and returns positional args.
// Parse errors and usage go to stderr.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs, f := newConvertFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
