package render

import (
	"fmt"
	"image"
	"math"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/lixenwraith/retro-terminal/vmath"
)

// Braille raster geometry: each terminal cell holds a 2x4 dot matrix
const (
	dotsPerCellX = 2
	dotsPerCellY = 4
	brailleBase  = 0x2800
	litThreshold = 0.25
)

// Text rendering thresholds and metrics
const (
	dimBelowScale = 1.0
	bannerScale   = 1.2
	bannerPoints  = 10.0 // glyph size in dots at scale 1
	tabAdvances   = 4
)

// brailleBit[dy][dx] is the Unicode braille bit for a dot position
var brailleBit = [dotsPerCellY][dotsPerCellX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type glyph struct {
	r     rune
	c     Color
	attrs Attr
	set   bool
}

// ParseFont loads the monospace face used for banners and PNG export
func ParseFont() (*truetype.Font, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return f, nil
}

// Surface is the offscreen target scenes draw into
// Vector shapes rasterize into a braille dot image, text lands on a cell layer above it
type Surface struct {
	logicalW, logicalH float64
	stretch            bool

	cols, rows     int
	sx, sy, ox, oy float64

	dc    *gg.Context
	bg    Color
	text  []glyph
	font  *truetype.Font
	faces map[float64]font.Face
}

// NewSurface creates a surface for a logical resolution
// stretch fills the terminal, otherwise the layout is letterboxed to its aspect
func NewSurface(width, height float64, stretch bool, f *truetype.Font) *Surface {
	s := &Surface{
		logicalW: width,
		logicalH: height,
		stretch:  stretch,
		font:     f,
		faces:    make(map[float64]font.Face),
		bg:       RGBA(0, 0, 0, 1),
	}
	s.Resize(1, 1)
	return s
}

// Resize reallocates the raster for a terminal size in cells
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = cols, rows
	dw := float64(cols * dotsPerCellX)
	dh := float64(rows * dotsPerCellY)

	if s.stretch {
		s.sx, s.sy = dw/s.logicalW, dh/s.logicalH
		s.ox, s.oy = 0, 0
	} else {
		k := math.Min(dw/s.logicalW, dh/s.logicalH)
		s.sx, s.sy = k, k
		s.ox = (dw - s.logicalW*k) / 2
		s.oy = (dh - s.logicalH*k) / 2
	}

	s.dc = gg.NewContext(cols*dotsPerCellX, rows*dotsPerCellY)
	s.dc.SetLineCapRound()
	s.text = make([]glyph, cols*rows)
}

// begin discards the previous pass and starts on the scene background
func (s *Surface) begin() {
	s.Clear(ColorSceneClear)
}

// toDot maps logical coordinates to raster dots
func (s *Surface) toDot(x, y float64) (float64, float64) {
	return s.ox + x*s.sx, s.oy + y*s.sy
}

func (s *Surface) Width() float64  { return s.logicalW }
func (s *Surface) Height() float64 { return s.logicalH }

func (s *Surface) LineHeight() float64 {
	return dotsPerCellY / s.sy
}

// Clear sets the pass background and empties both layers
func (s *Surface) Clear(c Color) {
	s.bg = c
	s.dc.SetRGBA(0, 0, 0, 0)
	s.dc.Clear()
	clear(s.text)
}

// advances counts text cells occupied by str
func advances(str string) int {
	n := 0
	for _, r := range str {
		switch {
		case r == '\t':
			n += tabAdvances
		case unicode.IsSpace(r):
			n++
		case !unicode.IsPrint(r):
		default:
			n += runewidth.RuneWidth(r)
		}
	}
	return n
}

func (s *Surface) Text(str string, x, y, scale float64, c Color) {
	if str == "" {
		return
	}
	if scale >= bannerScale {
		s.banner(str, x, y, scale, c)
		return
	}

	attrs := AttrNone
	if scale < dimBelowScale {
		attrs = AttrDim
	}

	dx, dy := s.toDot(x, y)
	col := int(math.Floor(dx / dotsPerCellX))
	row := int(math.Floor(dy / dotsPerCellY))
	if row < 0 || row >= s.rows {
		return
	}

	for _, r := range str {
		switch {
		case r == '\t':
			col += tabAdvances
			continue
		case unicode.IsSpace(r):
			col++
			continue
		case !unicode.IsPrint(r):
			continue
		}

		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.put(col, row, glyph{r: r, c: c, attrs: attrs, set: true})
		if w == 2 {
			s.put(col+1, row, glyph{r: wideTail, c: c, set: true})
		}
		col += w
	}
}

func (s *Surface) put(col, row int, g glyph) {
	if col < 0 || col >= s.cols {
		return
	}
	s.text[row*s.cols+col] = g
}

func (s *Surface) TextWidth(str string, scale float64) float64 {
	if scale >= bannerScale {
		s.dc.SetFontFace(s.face(scale))
		w, _ := s.dc.MeasureString(str)
		return w / s.sx
	}
	return float64(advances(str)*dotsPerCellX) / s.sx
}

// banner rasterizes large text with the truetype face, top edge at y
func (s *Surface) banner(str string, x, y, scale float64, c Color) {
	dx, dy := s.toDot(x, y)
	s.dc.SetFontFace(s.face(scale))
	s.dc.SetColor(c.NRGBA())
	s.dc.DrawStringAnchored(str, dx, dy, 0, 1)
}

func (s *Surface) face(scale float64) font.Face {
	if f, ok := s.faces[scale]; ok {
		return f
	}
	f := truetype.NewFace(s.font, &truetype.Options{
		Size:    bannerPoints * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	s.faces[scale] = f
	return f
}

// strokeWidth converts a logical line width to dots, never thinner than one dot
func (s *Surface) strokeWidth(w float64) float64 {
	return math.Max(1, w*s.sx)
}

func (s *Surface) Line(x1, y1, x2, y2, width float64, c Color) {
	ax, ay := s.toDot(x1, y1)
	bx, by := s.toDot(x2, y2)
	s.dc.SetColor(c.NRGBA())
	s.dc.SetLineWidth(s.strokeWidth(width))
	s.dc.DrawLine(ax, ay, bx, by)
	s.dc.Stroke()
}

func (s *Surface) Polyline(pts []vmath.Vec2, width float64, c Color) {
	if len(pts) < 2 {
		return
	}
	s.dc.SetColor(c.NRGBA())
	s.dc.SetLineWidth(s.strokeWidth(width))
	x, y := s.toDot(pts[0].X, pts[0].Y)
	s.dc.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = s.toDot(p.X, p.Y)
		s.dc.LineTo(x, y)
	}
	s.dc.Stroke()
}

func (s *Surface) Circle(x, y, r, width float64, c Color) {
	cx, cy := s.toDot(x, y)
	s.dc.SetColor(c.NRGBA())
	s.dc.SetLineWidth(s.strokeWidth(width))
	s.dc.DrawEllipse(cx, cy, r*s.sx, r*s.sy)
	s.dc.Stroke()
}

func (s *Surface) Point(x, y, r float64, c Color) {
	cx, cy := s.toDot(x, y)
	s.dc.SetColor(c.NRGBA())
	s.dc.DrawEllipse(cx, cy, math.Max(0.5, r*s.sx), math.Max(0.5, r*s.sy))
	s.dc.Fill()
}

// resolve collapses the dot raster to braille cells and lays text over it
func (s *Surface) resolve(dst *RenderBuffer) {
	if dst.width != s.cols || dst.height != s.rows {
		dst.Resize(s.cols, s.rows)
	}

	bg := s.bg.RGB()
	img := s.dc.Image().(*image.RGBA)

	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			dst.SetWithBg(col, row, 0, bg, bg)

			if gl := s.text[row*s.cols+col]; gl.set {
				dst.Set(col, row, gl.r, gl.c.RGB(), bg, BlendAlphaFg, gl.c.A, gl.attrs)
				continue
			}

			var bits rune
			var r, g, b, a float64
			lit := 0
			for dy := 0; dy < dotsPerCellY; dy++ {
				for dx := 0; dx < dotsPerCellX; dx++ {
					off := img.PixOffset(col*dotsPerCellX+dx, row*dotsPerCellY+dy)
					pa := float64(img.Pix[off+3]) / 255
					if pa <= litThreshold {
						continue
					}
					bits |= brailleBit[dy][dx]
					// Pix is premultiplied
					r += float64(img.Pix[off]) / pa
					g += float64(img.Pix[off+1]) / pa
					b += float64(img.Pix[off+2]) / pa
					a += pa
					lit++
				}
			}
			if lit > 0 {
				n := float64(lit)
				avg := RGB{R: clamp(r / n), G: clamp(g / n), B: clamp(b / n)}
				dst.Set(col, row, brailleBase+bits, avg, bg, BlendAlphaFg, a/n, AttrNone)
			}
		}
	}
}
