package render

import "github.com/gdamore/tcell/v2"

// Attr is a bitmask of text attributes carried by a cell
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << 0
	AttrDim  Attr = 1 << 1
)

// Cell is one terminal character cell of composited output
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// wideTail marks the second column of a double-width rune, never written out
const wideTail rune = -1

// emptyCell is the cleared state, rune 0 is written as a space
var emptyCell = Cell{Rune: 0, Fg: RGBBlack, Bg: RGBBlack, Attrs: AttrNone}

// Style converts the cell colors and attributes to a tcell style
func (c Cell) Style() tcell.Style {
	st := tcell.StyleDefault.Foreground(c.Fg.Tcell()).Background(c.Bg.Tcell())
	if c.Attrs&AttrBold != 0 {
		st = st.Bold(true)
	}
	if c.Attrs&AttrDim != 0 {
		st = st.Dim(true)
	}
	return st
}
