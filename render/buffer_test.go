package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("sim screen init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func TestRenderBufferResizeReusesCapacity(t *testing.T) {
	b := NewRenderBuffer(10, 10)
	b.SetWithBg(1, 1, 'x', RGBWhite, RGBBlack)

	b.Resize(5, 5)
	if w, h := b.Bounds(); w != 5 || h != 5 {
		t.Fatalf("bounds = %dx%d", w, h)
	}
	if cap(b.cells) != 100 {
		t.Errorf("shrinking reallocated: cap %d", cap(b.cells))
	}
	if got := b.Get(1, 1); got != emptyCell {
		t.Errorf("resize must clear, got %+v", got)
	}
}

func TestRenderBufferOutOfBounds(t *testing.T) {
	b := NewRenderBuffer(2, 2)
	b.SetWithBg(-1, 0, 'x', RGBWhite, RGBWhite)
	b.Set(2, 0, 'x', RGBWhite, RGBWhite, BlendAddFg, 1, AttrNone)
	b.Set(0, 5, 'x', RGBWhite, RGBWhite, BlendAlphaFg, 1, AttrNone)

	if b.Cell(5, 5) != nil {
		t.Error("Cell outside bounds must be nil")
	}
	for i, c := range b.cells {
		if c != emptyCell {
			t.Errorf("cell %d written out of bounds: %+v", i, c)
		}
	}
}

func TestRenderBufferBlendModes(t *testing.T) {
	base := RGB{100, 100, 100}
	src := RGB{200, 50, 100}

	tests := []struct {
		name   string
		mode   BlendMode
		alpha  float64
		wantFg RGB
		wantBg RGB
	}{
		{"alpha fg full", BlendAlphaFg, 1, src, base},
		{"alpha fg half", BlendAlphaFg, 0.5, RGB{150, 75, 100}, base},
		{"alpha fg zero", BlendAlphaFg, 0, base, base},
		{"add fg", BlendAddFg, 1, RGB{255, 150, 200}, base},
		{"add bg", BlendAddBg, 1, base, RGB{255, 150, 200}},
		{"add bg half", BlendAddBg, 0.5, base, RGB{177, 125, 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewRenderBuffer(1, 1)
			b.SetWithBg(0, 0, 'a', base, base)
			b.Set(0, 0, 0, src, src, tt.mode, tt.alpha, AttrNone)

			got := b.Get(0, 0)
			if got.Fg != tt.wantFg || got.Bg != tt.wantBg {
				t.Errorf("fg=%v bg=%v, want fg=%v bg=%v", got.Fg, got.Bg, tt.wantFg, tt.wantBg)
			}
			if got.Rune != 'a' {
				t.Errorf("rune 0 must keep existing rune, got %q", got.Rune)
			}
		})
	}
}

func TestRenderBufferSetReplacesRuneAndAttrs(t *testing.T) {
	b := NewRenderBuffer(1, 1)
	b.SetWithBg(0, 0, 'a', RGBBlack, RGBBlack)
	b.Set(0, 0, 'b', RGBWhite, RGBWhite, BlendAlphaFg, 1, AttrDim)

	got := b.Get(0, 0)
	if got.Rune != 'b' || got.Attrs != AttrDim {
		t.Errorf("rune=%q attrs=%v", got.Rune, got.Attrs)
	}
	if got.Bg != RGBBlack {
		t.Errorf("fg-only mode touched bg: %v", got.Bg)
	}
}

func TestRenderBufferFlush(t *testing.T) {
	screen := newSimScreen(t, 3, 2)

	b := NewRenderBuffer(3, 2)
	b.SetWithBg(0, 0, 'A', RGB{0, 255, 0}, RGB{0, 26, 0})
	b.Set(1, 1, '⠿', RGB{10, 20, 30}, RGBBlack, BlendAlphaFg, 1, AttrDim)
	b.Flush(screen)

	cells, w, h := screen.GetContents()
	if w != 3 || h != 2 {
		t.Fatalf("screen = %dx%d", w, h)
	}

	first := cells[0]
	if first.Runes[0] != 'A' {
		t.Errorf("cell 0 rune = %q", first.Runes[0])
	}
	fg, bg, _ := first.Style.Decompose()
	if fg != tcell.NewRGBColor(0, 255, 0) || bg != tcell.NewRGBColor(0, 26, 0) {
		t.Errorf("cell 0 colors fg=%v bg=%v", fg, bg)
	}

	if cells[1].Runes[0] != ' ' {
		t.Errorf("empty cell must flush as space, got %q", cells[1].Runes[0])
	}

	dim := cells[1*w+1]
	if dim.Runes[0] != '⠿' {
		t.Errorf("braille cell rune = %q", dim.Runes[0])
	}
	if _, _, attrs := dim.Style.Decompose(); attrs&tcell.AttrDim == 0 {
		t.Error("dim attribute lost")
	}
}
