package paginate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is one top-level element of a rendered fragment.
type Node struct {
	Tag     string // lower-case element name
	HTML    string // rendered markup
	TextLen int    // visible text length in runes
	Items   int    // list items, nested included
	Lines   int    // preformatted lines
	Rows    int    // table rows
	Images  int    // img descendants, self included
	Level   int    // heading level 1-6, 0 otherwise
	IsImage bool   // image, or paragraph/figure holding only images
}

// IsHeading reports whether n is an h1-h6 element.
func (n Node) IsHeading() bool {
	return n.Level > 0
}

// Flatten parses an HTML fragment in body context and returns its top-level
// elements in document order. Comments and whitespace are dropped; bare text
// is wrapped in a paragraph.
func Flatten(fragment string) ([]Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}

	nodes := make([]Node, 0, len(parsed))
	for _, n := range parsed {
		switch n.Type {
		case html.ElementNode:
			node, err := measure(n)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case html.TextNode:
			text := strings.TrimSpace(n.Data)
			if text == "" {
				continue
			}
			nodes = append(nodes, Node{
				Tag:     "p",
				HTML:    "<p>" + html.EscapeString(text) + "</p>",
				TextLen: utf8.RuneCountInString(text),
			})
		}
	}
	return nodes, nil
}

func measure(n *html.Node) (Node, error) {
	var buf strings.Builder
	if err := html.Render(&buf, n); err != nil {
		return Node{}, fmt.Errorf("rendering <%s>: %w", n.Data, err)
	}

	node := Node{
		Tag:   n.Data,
		HTML:  buf.String(),
		Level: headingLevel(n.DataAtom),
	}

	var text strings.Builder
	walk(n, func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
		case html.ElementNode:
			switch c.DataAtom {
			case atom.Li:
				node.Items++
			case atom.Tr:
				node.Rows++
			case atom.Img:
				node.Images++
			case atom.Pre:
				node.Lines += preLines(c)
			}
		}
	})
	node.TextLen = utf8.RuneCountInString(strings.TrimSpace(text.String()))
	node.IsImage = isImageOnly(n)
	return node, nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func preLines(pre *html.Node) int {
	var text strings.Builder
	walk(pre, func(c *html.Node) {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	})
	body := strings.TrimRight(text.String(), "\n")
	if body == "" {
		return 1
	}
	return strings.Count(body, "\n") + 1
}

// isImageOnly reports whether n is an img, or a p/figure whose content is
// images with at most whitespace, line breaks and wrapping links around them.
func isImageOnly(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Img:
		return true
	case atom.P, atom.Figure:
	default:
		return false
	}

	images := 0
	ok := true
	walk(n, func(c *html.Node) {
		if c == n || !ok {
			return
		}
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				ok = false
			}
		case html.ElementNode:
			switch c.DataAtom {
			case atom.Img:
				images++
			case atom.Br, atom.A, atom.Picture, atom.Source:
			default:
				ok = false
			}
		}
	})
	return ok && images > 0
}
