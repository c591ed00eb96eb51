package render

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Export cell geometry in pixels
const (
	exportCellW = 8
	exportCellH = 16
)

// ExportPNG renders a cell buffer to a PNG, braille cells as dot grids and text with the mono face
func ExportPNG(buf *RenderBuffer, path string) error {
	f, err := ParseFont()
	if err != nil {
		return err
	}

	w, h := buf.Bounds()
	dc := gg.NewContext(w*exportCellW, h*exportCellH)
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    13,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := buf.Get(x, y)
			px, py := float64(x*exportCellW), float64(y*exportCellH)

			dc.SetRGB255(int(cell.Bg.R), int(cell.Bg.G), int(cell.Bg.B))
			dc.DrawRectangle(px, py, exportCellW, exportCellH)
			dc.Fill()

			r := cell.Rune
			if r == 0 || r == ' ' || r == wideTail {
				continue
			}

			fg := cell.Fg
			if cell.Attrs&AttrDim != 0 {
				fg = Scale(fg, 0.6)
			}
			dc.SetRGB255(int(fg.R), int(fg.G), int(fg.B))

			if r >= brailleBase && r <= brailleBase+0xFF {
				drawBrailleDots(dc, r-brailleBase, px, py)
				continue
			}
			dc.DrawString(string(r), px, py+exportCellH-4)
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func drawBrailleDots(dc *gg.Context, bits rune, px, py float64) {
	const pitchX, pitchY = exportCellW / dotsPerCellX, exportCellH / dotsPerCellY
	for dy := 0; dy < dotsPerCellY; dy++ {
		for dx := 0; dx < dotsPerCellX; dx++ {
			if bits&brailleBit[dy][dx] == 0 {
				continue
			}
			dc.DrawCircle(px+float64(dx*pitchX)+pitchX/2, py+float64(dy*pitchY)+pitchY/2, 1.4)
			dc.Fill()
		}
	}
}
