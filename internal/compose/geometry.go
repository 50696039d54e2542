package compose

import (
	"fmt"
	"strings"
)

// Geometry is the physical page box in inches.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
}

// Paper dimensions in inches, portrait.
var paperSizes = map[string][2]float64{
	"letter": {8.5, 11},
	"a4":     {8.27, 11.69},
	"legal":  {8.5, 14},
}

// NewGeometry builds a Geometry from a paper size name, an orientation and
// a margin. Unknown sizes fall back to letter.
func NewGeometry(size, orientation string, margin float64) Geometry {
	dims, ok := paperSizes[strings.ToLower(size)]
	if !ok {
		dims = paperSizes["letter"]
	}
	g := Geometry{Width: dims[0], Height: dims[1], Margin: margin}
	if strings.EqualFold(orientation, "landscape") {
		g.Width, g.Height = g.Height, g.Width
	}
	return g
}

// DefaultGeometry is US letter, portrait, half-inch margins.
func DefaultGeometry() Geometry {
	return NewGeometry("letter", "portrait", 0.5)
}

// css renders the @page rule and the fixed page box. The margin is applied
// inside each shell so header and footer sit within the printable area.
// An oversized shell keeps the page height as a minimum and flows onto
// further sheets.
func (g Geometry) css() string {
	return fmt.Sprintf(`@page {
  size: %.2fin %.2fin;
  margin: 0;
}
.page {
  width: %.2fin;
  height: %.2fin;
  padding: %.2fin;
}
.page.page-oversized {
  height: auto;
  min-height: %.2fin;
}
`, g.Width, g.Height, g.Width, g.Height, g.Margin, g.Height)
}
