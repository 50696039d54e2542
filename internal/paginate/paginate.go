package paginate

import "strings"

// Page is one physical page of content.
type Page struct {
	Index int
	Nodes []Node
}

// HTML joins the markup of the page's nodes.
func (p Page) HTML() string {
	parts := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		parts[i] = n.HTML
	}
	return strings.Join(parts, "\n")
}

// Height returns the estimated height of the page under costs.
func (p Page) Height(costs CostTable) float64 {
	var h float64
	for _, n := range p.Nodes {
		h += costs.Estimate(n)
	}
	return h
}

// Layout is the result of pagination.
type Layout struct {
	Pages []Page
	Total int
}

// HTML concatenates every page's markup in order.
func (l Layout) HTML() string {
	parts := make([]string, len(l.Pages))
	for i, p := range l.Pages {
		parts[i] = p.HTML()
	}
	return strings.Join(parts, "\n")
}

// Paginate partitions nodes into pages. It never emits an empty page, keeps
// node order, and returns the same layout for the same input.
func Paginate(nodes []Node, policy Policy) Layout {
	policy = policy.withDefaults()

	var (
		pages   []Page
		current []Node
		height  float64
	)

	flush := func(keep int) {
		split := len(current) - keep
		pages = append(pages, Page{Index: len(pages), Nodes: current[:split:split]})
		carried := append([]Node(nil), current[split:]...)
		current = carried
		height = 0
		for _, n := range carried {
			height += policy.estimate(n)
		}
	}

	for _, n := range nodes {
		est := policy.estimate(n)

		switch {
		case len(current) == 0 || headingsOnly(current):
			// Nothing to flush without stranding a heading.
		case policy.breaksAt(n):
			flush(0)
		case height+est > policy.Budget:
			flush(trailingHeadings(current))
		}

		current = append(current, n)
		height += est
	}
	if len(current) > 0 {
		flush(0)
	}

	return Layout{Pages: pages, Total: len(pages)}
}

func headingsOnly(nodes []Node) bool {
	for _, n := range nodes {
		if !n.IsHeading() {
			return false
		}
	}
	return true
}

// trailingHeadings counts the headings at the end of nodes.
func trailingHeadings(nodes []Node) int {
	k := 0
	for i := len(nodes) - 1; i >= 0 && nodes[i].IsHeading(); i-- {
		k++
	}
	return k
}
