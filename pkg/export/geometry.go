package export

import (
	"fmt"
	"math"
)

// Geometry is the target page layout. Lengths are millimetres.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
	// Scale is the oversampling factor used when rasterizing.
	Scale float64
}

// A4 is the default geometry: 210x297 mm, 10 mm top and bottom margins, 2x.
var A4 = Geometry{PageWidth: 210, PageHeight: 297, MarginTop: 10, MarginBottom: 10, Scale: 2}

func (g Geometry) Validate() error {
	switch {
	case g.PageWidth <= 0 || g.PageHeight <= 0:
		return fmt.Errorf("page size must be positive, got %gx%g", g.PageWidth, g.PageHeight)
	case g.MarginTop < 0 || g.MarginBottom < 0:
		return fmt.Errorf("margins must not be negative")
	case g.UsableHeight() <= 0:
		return fmt.Errorf("margins leave no room on a %g mm page", g.PageHeight)
	case g.Scale <= 0:
		return fmt.Errorf("scale must be positive, got %g", g.Scale)
	}
	return nil
}

// UsableHeight is the content height per page.
func (g Geometry) UsableHeight() float64 {
	return g.PageHeight - g.MarginTop - g.MarginBottom
}

// Ratio converts bitmap pixels to millimetres. It applies to both axes.
func (g Geometry) Ratio(bitmapWidth int) float64 {
	return g.PageWidth / float64(bitmapWidth)
}

// StripHeight is the usable page height expressed in bitmap pixels.
func (g Geometry) StripHeight(bitmapWidth int) float64 {
	return g.UsableHeight() / g.Ratio(bitmapWidth)
}

// Strip is a horizontal band of the bitmap, in pixels.
type Strip struct {
	Top    int
	Height int
}

// PlanStrips cuts a bitmap of the given height into consecutive strips of
// stripHeight pixels. Boundaries are rounded from the exact multiples so the
// strips never overlap or leave gaps; the last strip holds the remainder.
// A remainder shorter than half a pixel folds into the previous strip, so
// the page count can be one below ceil(bitmapHeight/stripHeight).
func PlanStrips(bitmapHeight int, stripHeight float64) []Strip {
	if bitmapHeight <= 0 || stripHeight <= 0 {
		return nil
	}
	var strips []Strip
	top := 0
	for k := 1; top < bitmapHeight; k++ {
		next := int(math.Round(float64(k) * stripHeight))
		if next <= top {
			next = top + 1
		}
		if next > bitmapHeight {
			next = bitmapHeight
		}
		strips = append(strips, Strip{Top: top, Height: next - top})
		top = next
	}
	return strips
}
