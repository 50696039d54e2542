package paginate

import "math"

// CostTable holds the per-tag height estimates, in CSS pixels.
//
// A zero field means "use the default" when a table is merged over
// DefaultCosts, so an override cannot set a cost to zero. Use a small
// positive value such as 0.01 to make an element nearly free.
type CostTable struct {
	Heading1     float64 `yaml:"h1"`
	Heading2     float64 `yaml:"h2"`
	Heading3     float64 `yaml:"h3"`
	Heading4     float64 `yaml:"h4"`
	Heading5     float64 `yaml:"h5"`
	Heading6     float64 `yaml:"h6"`
	CharsPerLine int     `yaml:"charsPerLine"`
	LineHeight   float64 `yaml:"lineHeight"`
	ParagraphGap float64 `yaml:"paragraphGap"`
	ListItem     float64 `yaml:"listItem"`
	Image        float64 `yaml:"image"`
	CodeLine     float64 `yaml:"codeLine"`
	TableRow     float64 `yaml:"tableRow"`
	Rule         float64 `yaml:"rule"`
	Default      float64 `yaml:"default"`
}

// DefaultCosts returns estimates tuned for the embedded stylesheet on a
// letter page with half-inch margins.
func DefaultCosts() CostTable {
	return CostTable{
		Heading1:     70,
		Heading2:     60,
		Heading3:     50,
		Heading4:     40,
		Heading5:     40,
		Heading6:     40,
		CharsPerLine: 90,
		LineHeight:   24,
		ParagraphGap: 12,
		ListItem:     28,
		Image:        350,
		CodeLine:     20,
		TableRow:     30,
		Rule:         20,
		Default:      40,
	}
}

// Merge returns c with every zero field replaced by the matching field of
// base. Zero is indistinguishable from unset.
func (c CostTable) Merge(base CostTable) CostTable {
	pick := func(v, d float64) float64 {
		if v == 0 {
			return d
		}
		return v
	}
	out := CostTable{
		Heading1:     pick(c.Heading1, base.Heading1),
		Heading2:     pick(c.Heading2, base.Heading2),
		Heading3:     pick(c.Heading3, base.Heading3),
		Heading4:     pick(c.Heading4, base.Heading4),
		Heading5:     pick(c.Heading5, base.Heading5),
		Heading6:     pick(c.Heading6, base.Heading6),
		CharsPerLine: c.CharsPerLine,
		LineHeight:   pick(c.LineHeight, base.LineHeight),
		ParagraphGap: pick(c.ParagraphGap, base.ParagraphGap),
		ListItem:     pick(c.ListItem, base.ListItem),
		Image:        pick(c.Image, base.Image),
		CodeLine:     pick(c.CodeLine, base.CodeLine),
		TableRow:     pick(c.TableRow, base.TableRow),
		Rule:         pick(c.Rule, base.Rule),
		Default:      pick(c.Default, base.Default),
	}
	if out.CharsPerLine == 0 {
		out.CharsPerLine = base.CharsPerLine
	}
	return out
}

func (c CostTable) heading(level int) float64 {
	switch level {
	case 1:
		return c.Heading1
	case 2:
		return c.Heading2
	case 3:
		return c.Heading3
	case 4:
		return c.Heading4
	case 5:
		return c.Heading5
	default:
		return c.Heading6
	}
}

// Estimate returns the rendered height of n.
func (c CostTable) Estimate(n Node) float64 {
	if n.IsHeading() {
		return c.heading(n.Level)
	}
	if n.IsImage {
		return c.Image*float64(max(n.Images, 1)) + c.ParagraphGap
	}

	// Images nested in lists, tables or text are charged on top.
	extra := c.Image * float64(n.Images)

	switch n.Tag {
	case "ul", "ol":
		return float64(n.Items)*c.ListItem + c.ParagraphGap + extra
	case "pre":
		return float64(max(n.Lines, 1))*c.CodeLine + c.ParagraphGap + extra
	case "table":
		return float64(n.Rows)*c.TableRow + c.ParagraphGap + extra
	case "hr":
		return c.Rule
	case "p", "blockquote", "div", "dl", "figure", "details":
		return c.text(n.TextLen) + c.ParagraphGap + extra
	}
	return c.Default + extra
}

func (c CostTable) text(runes int) float64 {
	perLine := c.CharsPerLine
	if perLine <= 0 {
		perLine = 1
	}
	lines := math.Ceil(float64(runes) / float64(perLine))
	if lines < 1 {
		lines = 1
	}
	return lines * c.LineHeight
}
