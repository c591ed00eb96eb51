package render

import (
	"image/color"
)

// Color is a straight-alpha float color in [0,1], the unit scenes draw with
type Color struct {
	R, G, B, A float64
}

// RGBA builds a Color
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Opaque builds a Color with full alpha
func Opaque(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Scene palette
var (
	ColorText       = Opaque(0, 1, 0)
	ColorSceneClear = Opaque(0, 0.1, 0)
	ColorMapClear   = Opaque(0.02, 0.13, 0.04)
)

// WithAlpha returns c with alpha replaced
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGB drops alpha and quantizes to 8 bits
func (c Color) RGB() RGB {
	return RGB{
		R: clamp(c.R*255 + 0.5),
		G: clamp(c.G*255 + 0.5),
		B: clamp(c.B*255 + 0.5),
	}
}

// NRGBA converts for image/color consumers such as gg
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: clamp(c.R*255 + 0.5),
		G: clamp(c.G*255 + 0.5),
		B: clamp(c.B*255 + 0.5),
		A: clamp(c.A*255 + 0.5),
	}
}
