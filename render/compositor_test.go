package render

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestCompositor(t *testing.T, opts Options) *Compositor {
	t.Helper()
	if opts.Width == 0 {
		opts.Width, opts.Height = 1920, 1080
	}
	c, err := NewCompositor(opts)
	if err != nil {
		t.Fatal(err)
	}
	c.Resize(80, 24)
	return c
}

func TestCompositorResize(t *testing.T) {
	c := newTestCompositor(t, Options{})

	if c.Resize(80, 24) {
		t.Error("same size must not reallocate")
	}
	if !c.Resize(0, -3) {
		t.Fatal("zero size must clamp and apply")
	}
	if w, h := c.Size(); w != 1 || h != 1 {
		t.Errorf("clamped size = %dx%d", w, h)
	}
	if c.Resize(0, 0) {
		t.Error("clamped size repeated must be a no-op")
	}
	if w, h := c.Output().Bounds(); w != 1 || h != 1 {
		t.Errorf("output bounds = %dx%d", w, h)
	}
}

func TestCompositorPassBracketing(t *testing.T) {
	c := newTestCompositor(t, Options{})

	c.EndPass()
	if c.Passes() != 0 {
		t.Fatal("EndPass without BeginPass counted")
	}

	c.BeginPass()
	c.Canvas().Clear(ColorSceneClear)
	c.Canvas().Text("LOGIN:", 0, 540, 1, ColorText)
	c.EndPass()
	if c.Passes() != 1 {
		t.Fatalf("passes = %d", c.Passes())
	}

	c.PresentBase(0)
	if got := c.Output().Get(0, 12).Rune; got != 'L' {
		t.Errorf("presented rune = %q, want L", got)
	}
}

func TestCompositorBlackout(t *testing.T) {
	c := newTestCompositor(t, Options{})

	c.PresentBlackout(0)
	if got := c.Output().Get(5, 5).Bg; got != (RGB{0, 26, 0}) {
		t.Errorf("fade 0 bg = %v", got)
	}
	c.PresentBlackout(1)
	for i, cell := range c.Output().cells {
		if cell.Bg != RGBBlack || cell.Rune != 0 {
			t.Fatalf("fade 1 cell %d = %+v", i, cell)
		}
	}
}

func TestCompositorScanlines(t *testing.T) {
	c := newTestCompositor(t, Options{Scanlines: true})

	c.BeginPass()
	c.Canvas().Clear(Opaque(0, 1, 0))
	c.EndPass()
	c.PresentBase(1.5)

	even := c.Output().Get(40, 10).Bg.G
	odd := c.Output().Get(40, 11).Bg.G
	if even != 255 {
		t.Errorf("even row = %d, want 255 without noise or vignette", even)
	}
	if odd >= even {
		t.Errorf("odd row %d not dimmed below %d", odd, even)
	}
}

func TestCompositorDeterministicNoise(t *testing.T) {
	c := newTestCompositor(t, Options{Scanlines: true, Noise: 0.1, Vignette: 0.4})

	c.BeginPass()
	c.Canvas().Clear(ColorSceneClear)
	c.Canvas().Circle(960, 540, 300, 3, ColorText)
	c.EndPass()

	c.PresentBase(2.0)
	first := make([]Cell, len(c.Output().cells))
	copy(first, c.Output().cells)

	c.PresentBase(2.0)
	for i := range first {
		if first[i] != c.Output().cells[i] {
			t.Fatalf("cell %d differs between identical presents", i)
		}
	}

	// Vignette darkens corners relative to the center
	if corner, center := c.Output().Get(0, 0).Bg.G, c.Output().Get(40, 12).Bg.G; corner >= center {
		t.Errorf("corner %d not darker than center %d", corner, center)
	}
}

func TestCompositorOverlayBand(t *testing.T) {
	tests := []struct {
		name      string
		closeAnim float64
		rows      [2]int // visible [top, bottom)
		cols      [2]int
	}{
		{"open", 0, [2]int{0, 24}, [2]int{0, 80}},
		{"half", 0.5, [2]int{6, 18}, [2]int{0, 80}},
		{"line", 0.9, [2]int{10, 14}, [2]int{0, 80}},
		{"shrinking", 0.912, [2]int{10, 14}, [2]int{4, 76}},
		{"dot", 1, [2]int{12, 13}, [2]int{40, 41}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCompositor(t, Options{})
			c.BeginPass()
			c.Canvas().Clear(ColorSceneClear)
			c.EndPass()
			c.PresentOverlay(0, tt.closeAnim)

			out := c.Output()
			for y := 0; y < 24; y++ {
				for x := 0; x < 80; x++ {
					inside := y >= tt.rows[0] && y < tt.rows[1] && x >= tt.cols[0] && x < tt.cols[1]
					blank := out.Get(x, y) == emptyCell
					if inside == blank {
						t.Fatalf("(%d,%d) inside=%v blank=%v", x, y, inside, blank)
					}
				}
			}
		})
	}
}

func TestCompositorOverlayGlow(t *testing.T) {
	tests := []struct {
		name      string
		closeAnim float64
		fgAlpha   float64
		bgAlpha   float64
	}{
		{"open", 0, 0, 0},
		{"half", 0.5, 0.25, 0.2},
		{"dot", 1, 1, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCompositor(t, Options{})
			c.BeginPass()
			c.Canvas().Clear(ColorSceneClear)
			c.Canvas().Text("#", 960, 540, 1, ColorText)
			c.EndPass()

			c.PresentBase(0)
			base := c.Output().Get(40, 12)
			c.PresentOverlay(0, tt.closeAnim)
			got := c.Output().Get(40, 12)

			if got.Rune != base.Rune {
				t.Errorf("glow changed rune %q -> %q", base.Rune, got.Rune)
			}
			if want := Add(base.Fg, RGBWhite, tt.fgAlpha); got.Fg != want {
				t.Errorf("fg = %v, want %v", got.Fg, want)
			}
			if want := Add(base.Bg, RGBWhite, tt.bgAlpha); got.Bg != want {
				t.Errorf("bg = %v, want %v", got.Bg, want)
			}
		})
	}
}

func TestBandSpan(t *testing.T) {
	tests := []struct {
		n      int
		half   float64
		lo, hi int
	}{
		{24, 12, 0, 24},
		{24, 20, 0, 24},
		{24, 0, 12, 13},
		{1, 0, 0, 1},
		{7, 1, 2, 5},
	}
	for _, tt := range tests {
		lo, hi := bandSpan(tt.n, tt.half)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("bandSpan(%d, %v) = [%d,%d), want [%d,%d)", tt.n, tt.half, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestCompositorFlushAndExport(t *testing.T) {
	c := newTestCompositor(t, Options{})
	c.BeginPass()
	c.Canvas().Clear(ColorSceneClear)
	c.Canvas().Text("OK", 0, 0, 1, ColorText)
	c.Canvas().Line(0, 540, 1920, 540, 2, ColorText)
	c.EndPass()
	c.PresentBase(0)

	screen := newSimScreen(t, 80, 24)
	c.Flush(screen)
	cells, _, _ := screen.GetContents()
	if cells[0].Runes[0] != 'O' || cells[1].Runes[0] != 'K' {
		t.Errorf("flushed %q%q", cells[0].Runes[0], cells[1].Runes[0])
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := ExportPNG(c.Output(), path); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty png")
	}
}
