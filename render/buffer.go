package render

import (
	"github.com/gdamore/tcell/v2"
)

// RenderBuffer is a cell grid with blend-mode compositing and tcell output
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Bounds returns the buffer dimensions in cells
func (b *RenderBuffer) Bounds() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	b.Fill(emptyCell)
}

// Fill sets every cell to c
func (b *RenderBuffer) Fill(c Cell) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = c
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// CopyFrom replaces contents with src, resizing if needed
func (b *RenderBuffer) CopyFrom(src *RenderBuffer) {
	if b.width != src.width || b.height != src.height {
		b.Resize(src.width, src.height)
	}
	copy(b.cells, src.cells)
}

// inBounds returns true if in screen bounds
func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y or an empty cell outside bounds
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return emptyCell
	}
	return b.cells[y*b.width+x]
}

// Cell returns a pointer for in-place post-processing, nil outside bounds
func (b *RenderBuffer) Cell(x, y int) *Cell {
	if !b.inBounds(x, y) {
		return nil
	}
	return &b.cells[y*b.width+x]
}

// ===== COMPOSITOR API =====

// Set blends fg and bg into the channels mode selects; a nonzero rune also replaces rune and attrs
func (b *RenderBuffer) Set(x, y int, mainRune rune, fg, bg RGB, mode BlendMode, alpha float64, attrs Attr) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]

	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if mainRune != 0 {
		dst.Rune = mainRune
		dst.Attrs = attrs
	}

	if flags&flagBg != 0 {
		dst.Bg = blendOp(op, dst.Bg, bg, alpha)
	}
	if flags&flagFg != 0 {
		dst.Fg = blendOp(op, dst.Fg, fg, alpha)
	}
}

func blendOp(op uint8, dst, src RGB, alpha float64) RGB {
	switch op {
	case opAlpha:
		return Blend(dst, src, alpha)
	case opAdd:
		return Add(dst, src, alpha)
	default:
		return src
	}
}

// SetWithBg overwrites the whole cell opaquely, rune 0 included
func (b *RenderBuffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]

	dst.Rune = r
	dst.Fg = fg
	dst.Bg = bg
	dst.Attrs = AttrNone
}

// ===== OUTPUT =====

// Flush writes every cell to the screen and shows it
func (b *RenderBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x := range row {
			c := row[x]
			r := c.Rune
			if r == wideTail {
				continue
			}
			if r == 0 {
				r = ' '
			}
			screen.SetContent(x, y, r, nil, c.Style())
		}
	}
	screen.Show()
}
