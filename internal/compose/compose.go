// Package compose wraps paginated content into printable page shells.
package compose

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-manualpdf/internal/assets"
	"github.com/alnah/go-manualpdf/internal/paginate"
)

// ErrTemplate indicates the page template failed to parse or execute.
var ErrTemplate = errors.New("page template error")

// defaultTitle is used when no title is supplied.
const defaultTitle = "Document"

// Options controls one Compose call.
type Options struct {
	Logo  string // data URI of the header logo, empty for none
	Title string
	Page  Geometry

	// Oversized holds the indexes of pages whose content is taller than
	// one sheet. Their shells grow onto continuation sheets.
	Oversized map[int]bool
}

// Composer renders layouts with a page-shell template and a base stylesheet.
type Composer struct {
	tmpl    *template.Template
	baseCSS string
}

type shell struct {
	Number    int
	Body      template.HTML
	Oversized bool
}

type document struct {
	Title   string
	BaseCSS template.CSS
	PageCSS template.CSS
	Logo    template.URL
	Pages   []shell
	Total   int
}

// New loads the page template and the named style through loader.
func New(loader assets.AssetLoader, style string) (*Composer, error) {
	if style == "" {
		style = assets.DefaultStyleName
	}
	css, err := loader.LoadStyle(style)
	if err != nil {
		return nil, fmt.Errorf("loading style: %w", err)
	}
	src, err := loader.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	return NewFromSource(src, css)
}

// NewFromSource builds a Composer from template source and CSS.
func NewFromSource(src, baseCSS string) (*Composer, error) {
	tmpl, err := template.New(assets.PageTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return &Composer{tmpl: tmpl, baseCSS: baseCSS}, nil
}

// BaseCSS returns the stylesheet embedded in every composed document.
func (c *Composer) BaseCSS() string {
	return c.baseCSS
}

// Compose renders one shell per page into a standalone HTML document.
// Shell i carries the footer "i+1 / total".
func (c *Composer) Compose(layout paginate.Layout, opts Options) (string, error) {
	if opts.Page == (Geometry{}) {
		opts.Page = DefaultGeometry()
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}

	doc := document{
		Title:   opts.Title,
		BaseCSS: template.CSS(c.baseCSS),       // #nosec G203 -- stylesheet comes from embedded or operator-supplied assets
		PageCSS: template.CSS(opts.Page.css()), // #nosec G203 -- generated from numeric geometry
		Logo:    logoURL(opts.Logo),
		Pages:   make([]shell, len(layout.Pages)),
		Total:   len(layout.Pages),
	}
	for i, p := range layout.Pages {
		doc.Pages[i] = shell{
			Number:    i + 1,
			Body:      template.HTML(p.HTML()), // #nosec G203 -- markup produced by the renderer
			Oversized: opts.Oversized[p.Index],
		}
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return buf.String(), nil
}

// logoURL admits data URIs only; anything else renders no logo.
func logoURL(logo string) template.URL {
	if !strings.HasPrefix(logo, "data:image/") {
		return ""
	}
	return template.URL(logo) // #nosec G203 -- validated data:image URI
}
