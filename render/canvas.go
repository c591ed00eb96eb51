package render

import (
	"github.com/lixenwraith/retro-terminal/vmath"
)

// Canvas is the drawing surface a scene renders into
// Coordinates are logical layout units, origin top-left, y down
type Canvas interface {
	Width() float64
	Height() float64
	// LineHeight is the logical height of one text row
	LineHeight() float64

	Clear(c Color)

	// Text draws s with its first row at y; scale < 1 renders dim, scale >= 1.2 renders as a raster banner
	// Empty strings and non-printable runes are skipped, tabs expand to 4 advances
	Text(s string, x, y, scale float64, c Color)
	TextWidth(s string, scale float64) float64

	Line(x1, y1, x2, y2, width float64, c Color)
	Polyline(pts []vmath.Vec2, width float64, c Color)
	Circle(x, y, r, width float64, c Color)
	Point(x, y, r float64, c Color)
}
