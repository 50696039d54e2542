package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-manualpdf/internal/assetindex"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// MissingImageClass marks the placeholder rendered for unresolved images.
const MissingImageClass = "missing-image"

// imageRendererPriority beats goldmark's default HTML renderer (1000).
const imageRendererPriority = 100

// Resolver maps an image reference to embeddable content (a data URI).
type Resolver interface {
	Resolve(ref string) (string, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ref string) (string, bool)

// Resolve calls f(ref).
func (f ResolverFunc) Resolve(ref string) (string, bool) { return f(ref) }

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Rendering is the flowing HTML produced for one Markdown document.
type Rendering struct {
	Fragment   string   // body markup without document wrapper
	Unresolved []string // basenames of references with no matching asset, in order
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
// Image nodes are resolved through the configured Resolver.
type GoldmarkConverter struct {
	resolver Resolver
	title    string
}

// NewGoldmarkConverter creates a GoldmarkConverter resolving images with r.
// A nil resolver leaves every image unresolved.
func NewGoldmarkConverter(r Resolver) *GoldmarkConverter {
	if r == nil {
		r = ResolverFunc(func(string) (string, bool) { return "", false })
	}
	return &GoldmarkConverter{resolver: r}
}

// WithTitle sets the <title> used by ToHTML.
func (c *GoldmarkConverter) WithTitle(title string) *GoldmarkConverter {
	c.title = title
	return c
}

// newMarkdown builds a goldmark instance bound to one image renderer.
// A fresh instance per conversion keeps unresolved tracking per call.
func (c *GoldmarkConverter) newMarkdown(img *imageRenderer) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			renderer.WithNodeRenderers(util.Prioritized(img, imageRendererPriority)),
		),
	)
}

// Render converts Markdown to an HTML fragment.
// Supports context cancellation via goroutine + select since goldmark
// doesn't natively support context.
func (c *GoldmarkConverter) Render(ctx context.Context, content string) (*Rendering, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		r   *Rendering
		err error
	}

	done := make(chan result, 1)

	go func() {
		img := &imageRenderer{resolver: c.resolver}
		var buf bytes.Buffer
		if err := c.newMarkdown(img).Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		fragment := ConvertMarkPlaceholders(buf.String())
		done <- result{r: &Rendering{Fragment: fragment, Unresolved: img.unresolved}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.r, r.err
	}
}

// ToHTML converts Markdown content to a standalone HTML5 document.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	r, err := c.Render(ctx, content)
	if err != nil {
		return "", err
	}
	return WrapDocument(c.title, r.Fragment), nil
}

// imageRenderer renders ast.Image nodes from resolved asset content.
type imageRenderer struct {
	resolver   Resolver
	unresolved []string
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *imageRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
}

func (r *imageRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	ref := string(n.Destination)
	alt := altText(n, source)

	src, ok := r.lookup(ref)
	if !ok {
		name := assetindex.Basename(ref)
		r.unresolved = append(r.unresolved, name)
		_, _ = w.WriteString(`<span class="` + MissingImageClass + `" data-ref="`)
		_, _ = w.Write(util.EscapeHTML([]byte(name)))
		_, _ = w.WriteString(`">Missing image: `)
		_, _ = w.Write(util.EscapeHTML([]byte(name)))
		_, _ = w.WriteString(`</span>`)
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<img src="`)
	_, _ = w.Write(util.EscapeHTML([]byte(src)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML(alt))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(` data-ref="`)
	_, _ = w.Write(util.EscapeHTML([]byte(assetindex.Basename(ref))))
	_, _ = w.WriteString(`" />`)
	return ast.WalkSkipChildren, nil
}

// lookup resolves ref, letting inline data:image URIs through untouched.
func (r *imageRenderer) lookup(ref string) (string, bool) {
	if strings.HasPrefix(ref, "data:image/") {
		return ref, true
	}
	return r.resolver.Resolve(ref)
}

// altText concatenates the text content of an image's children.
func altText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.Write(altText(c, source))
		}
	}
	return buf.Bytes()
}
