package manualpdf

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-manualpdf/internal/assets"
	"github.com/alnah/go-manualpdf/internal/autolink"
	"github.com/alnah/go-manualpdf/internal/compose"
	"github.com/alnah/go-manualpdf/internal/export"
	"github.com/alnah/go-manualpdf/internal/fileutil"
	"github.com/alnah/go-manualpdf/internal/paginate"
	"github.com/alnah/go-manualpdf/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ export.Opener                 = (*export.RodOpener)(nil)
)

// Converter orchestrates the manual-to-PDF pipeline: auto-linking,
// rendering, pagination, page composition and printing.
// Create with NewConverter(), and Close() when done.
// A Converter is not safe for concurrent use; see ConverterPool.
type Converter struct {
	cfg          converterConfig
	logger       *zap.Logger
	assetLoader  assets.AssetLoader
	composer     *compose.Composer
	preprocessor pipeline.MarkdownPreprocessor
	cssInjector  pipeline.CSSInjector
	opener       export.Opener
	trigger      *export.Trigger
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle, WithPagination).
// Returns error if asset loading, template parsing or pagination settings fail.
// The browser is started lazily on the first export.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:      defaultTimeout,
			settleDelay:  export.DefaultSettleDelay,
			imageTimeout: export.DefaultImageTimeout,
		},
		logger:       zap.NewNop(),
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.pagination.Validate(); err != nil {
		return nil, err
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
		c.logger.Debug("asset path configured",
			zap.String("path", c.cfg.assetPath),
			zap.Bool("custom", resolver.HasCustomLoader()))
	}

	composer, err := c.resolveComposer()
	if err != nil {
		return nil, err
	}
	c.composer = composer

	if c.opener == nil {
		c.opener = export.NewRodOpener()
	}
	c.trigger = export.NewTrigger(c.opener,
		export.WithSettleDelay(c.cfg.settleDelay),
		export.WithImageTimeout(c.cfg.imageTimeout),
		export.WithLogger(c.logger),
	)

	return c, nil
}

// Convert builds a session from input and runs the full pipeline.
// The context is used for cancellation; the converter timeout is applied on
// top of it. If input.HTMLOnly is true, printing is skipped.
// Screenshots or a logo that fail to decode are reported as warnings.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	s := NewSession()
	s.SetMarkdown(input.Markdown)

	var warnings []string
	if len(input.Images) > 0 {
		if err := s.AddImages(ctx, input.Images); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			for _, e := range multierr.Errors(err) {
				c.logger.Warn("skipping screenshot", zap.Error(e))
				warnings = append(warnings, e.Error())
			}
		}
	}
	if input.Logo != nil {
		if err := s.SetLogo(*input.Logo); err != nil {
			c.logger.Warn("skipping logo", zap.Error(err))
			warnings = append(warnings, "logo: "+err.Error())
		}
	}

	var doc *Document
	if input.HTMLOnly {
		doc, err = c.Layout(ctx, s.View(), input)
	} else {
		doc, err = c.Export(ctx, s.View(), input)
	}
	if err != nil {
		return nil, err
	}

	return &ConvertResult{
		HTML:       []byte(doc.HTML),
		PDF:        doc.PDF,
		Pages:      doc.Pages,
		Unresolved: doc.Preview.Unresolved,
		AutoLinked: doc.Preview.AutoLinked,
		Warnings:   append(warnings, doc.Preview.Warnings...),
	}, nil
}

// Preview renders view as one flowing, unpaginated document.
// Screenshots are auto-linked first unless input.DisableAutoLink is set.
func (c *Converter) Preview(ctx context.Context, view View, input Input) (*Preview, error) {
	if err := view.check(input.RequireImages); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := &Preview{}
	md := pipeline.NormalizeLineEndings(view.markdown)

	if !input.DisableAutoLink {
		res := autolink.Link(md, view.ImageNames())
		if res.Applied {
			md = res.Markdown
			p.AutoLinked = true
			c.logger.Debug("auto-linked screenshots",
				zap.Int("sections", len(res.Matched)),
				zap.Int("unmatched", len(res.Unmatched)))
			for _, key := range res.Duplicates {
				c.logger.Warn("duplicate section number", zap.String("key", key))
				p.Warnings = append(p.Warnings, fmt.Sprintf("section %s appears more than once; screenshots go to the last one", key))
			}
			for _, name := range res.Unmatched {
				c.logger.Debug("unmatched screenshot", zap.String("file", name))
				p.Warnings = append(p.Warnings, fmt.Sprintf("screenshot %s matched no section; placed under %q", name, autolink.AppendixTitle))
			}
		}
	}
	p.Markdown = md

	md = c.preprocessor.PreprocessMarkdown(ctx, md)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var resolver pipeline.Resolver
	if view.index != nil {
		resolver = view.index
	}
	r, err := pipeline.NewGoldmarkConverter(resolver).Render(ctx, md)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}
	p.Fragment = r.Fragment
	p.Unresolved = r.Unresolved
	for _, name := range r.Unresolved {
		c.logger.Warn("unresolved image reference", zap.String("file", name))
		p.Warnings = append(p.Warnings, fmt.Sprintf("no screenshot named %s", name))
	}

	css := c.composer.BaseCSS()
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	p.HTML = c.cssInjector.InjectCSS(ctx, pipeline.WrapDocument(input.Title, r.Fragment), css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return p, nil
}

// Layout renders view and splits it into decorated page shells.
func (c *Converter) Layout(ctx context.Context, view View, input Input) (*Document, error) {
	if err := input.Page.Validate(); err != nil {
		return nil, err
	}
	if err := input.Pagination.Validate(); err != nil {
		return nil, err
	}

	prev, err := c.Preview(ctx, view, input)
	if err != nil {
		return nil, err
	}

	nodes, err := paginate.Flatten(prev.Fragment)
	if err != nil {
		return nil, fmt.Errorf("paginating: %w", err)
	}

	geom := input.Page.geometry()
	pagination := input.Pagination
	if pagination == nil {
		pagination = c.cfg.pagination
	}
	policy := pagination.policy(geom)
	layout := paginate.Paginate(nodes, policy)
	c.logger.Debug("paginated manual",
		zap.Int("nodes", len(nodes)),
		zap.Int("pages", layout.Total),
		zap.String("mode", string(policy.Mode)),
		zap.Float64("budget", policy.Budget))
	oversized := make(map[int]bool)
	for _, page := range layout.Pages {
		h := page.Height(policy.Costs)
		if h <= policy.Budget {
			continue
		}
		oversized[page.Index] = true
		c.logger.Warn("page exceeds budget",
			zap.Int("page", page.Index+1),
			zap.Float64("height", h),
			zap.Float64("budget", policy.Budget))
		prev.Warnings = append(prev.Warnings, fmt.Sprintf(
			"page %d is taller than one sheet (estimated %.0f of %.0f); it continues onto extra sheets",
			page.Index+1, h, policy.Budget))
	}

	htmlContent, err := c.composer.Compose(layout, compose.Options{
		Logo:      view.logo,
		Title:     input.Title,
		Page:      geom,
		Oversized: oversized,
	})
	if err != nil {
		return nil, fmt.Errorf("composing pages: %w", err)
	}

	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, input.CSS)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return &Document{
		HTML:    htmlContent,
		Pages:   layout.Total,
		Preview: prev,
	}, nil
}

// Export lays view out and prints it. It returns ErrExportInProgress when
// another export on this converter is still running.
func (c *Converter) Export(ctx context.Context, view View, input Input) (*Document, error) {
	doc, err := c.Layout(ctx, view, input)
	if err != nil {
		return nil, err
	}

	pdf, err := c.trigger.Run(ctx, doc.HTML)
	if err != nil {
		return nil, fmt.Errorf("exporting PDF: %w", err)
	}
	c.logger.Debug("printed manual", zap.Int("bytes", len(pdf)))

	doc.PDF = pdf
	return doc, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if closer, ok := c.opener.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// resolveComposer resolves the style input (name, path, or CSS content) and
// builds the page composer around it.
func (c *Converter) resolveComposer() (*compose.Composer, error) {
	input := c.cfg.styleInput

	var css string
	switch {
	case fileutil.IsCSS(input):
		css = input
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("loading style file %q: %w", input, err)
		}
		css = string(content)
	default:
		composer, err := compose.New(c.assetLoader, input)
		if err != nil {
			return nil, fmt.Errorf("loading style %q: %w", input, err)
		}
		return composer, nil
	}

	tmpl, err := c.assetLoader.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	return compose.NewFromSource(tmpl, css)
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if input.RequireImages && len(input.Images) == 0 {
		return ErrNoImages
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.Pagination.Validate()
}
