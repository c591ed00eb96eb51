package render

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"
)

// CRT post-effect constants
const (
	scanlineDim    = 0.15
	phosphorTint   = 0.08
	dotGrainFactor = 0.5
	// closeAnim past which the collapsed line shrinks horizontally to a dot
	lineShrinkStart = 0.9
	// background share of the power-off glow
	overlayBgGlow = 0.8
)

var phosphor = RGB{R: 64, G: 255, B: 96}

// Options configures presentation
type Options struct {
	// Width and Height are the logical layout resolution
	Width, Height float64
	Stretch       bool
	Scanlines     bool
	Noise         float64
	Vignette      float64
}

// Compositor owns the offscreen surface and the presented cell buffer
type Compositor struct {
	opts    Options
	surface *Surface
	scene   *RenderBuffer
	out     *RenderBuffer

	cols, rows int
	inPass     bool
	passes     uint64
}

// NewCompositor parses the banner font and allocates a 1x1 target
func NewCompositor(opts Options) (*Compositor, error) {
	f, err := ParseFont()
	if err != nil {
		return nil, err
	}
	c := &Compositor{
		opts:    opts,
		surface: NewSurface(opts.Width, opts.Height, opts.Stretch, f),
		scene:   NewRenderBuffer(1, 1),
		out:     NewRenderBuffer(1, 1),
		cols:    1,
		rows:    1,
	}
	return c, nil
}

// Resize adapts to a terminal size in cells, clamping to at least 1x1
// Returns false when the size is unchanged and nothing was reallocated
func (c *Compositor) Resize(cols, rows int) bool {
	cols = max(cols, 1)
	rows = max(rows, 1)
	if cols == c.cols && rows == c.rows {
		return false
	}

	c.cols, c.rows = cols, rows
	c.surface.Resize(cols, rows)
	c.scene.Resize(cols, rows)
	c.out.Resize(cols, rows)
	log.Printf("[render] resized to %dx%d cells", cols, rows)
	return true
}

// Size returns the current target size in cells
func (c *Compositor) Size() (int, int) {
	return c.cols, c.rows
}

// Canvas returns the offscreen drawing surface
func (c *Compositor) Canvas() Canvas {
	return c.surface
}

// BeginPass starts an offscreen scene pass
func (c *Compositor) BeginPass() {
	c.surface.begin()
	c.inPass = true
}

// EndPass resolves the pass into the scene buffer
func (c *Compositor) EndPass() {
	if !c.inPass {
		return
	}
	c.surface.resolve(c.scene)
	c.inPass = false
	c.passes++
}

// Passes counts completed offscreen passes
func (c *Compositor) Passes() uint64 {
	return c.passes
}

// PresentBase presents the last pass through the CRT effect
func (c *Compositor) PresentBase(time float64) {
	c.out.CopyFrom(c.scene)
	c.crt(time)
}

// PresentOverlay presents the base pass cut down to a collapsing band
// closeAnim 0 is fully open, 1 is a single bright dot
func (c *Compositor) PresentOverlay(time, closeAnim float64) {
	c.PresentBase(time)

	closeAnim = math.Max(0, math.Min(1, closeAnim))
	top, bottom := bandSpan(c.rows, (1-closeAnim)*float64(c.rows)/2)
	left, right := 0, c.cols
	if closeAnim > lineShrinkStart {
		open := 1 - (closeAnim-lineShrinkStart)/(1-lineShrinkStart)
		left, right = bandSpan(c.cols, open*float64(c.cols)/2)
	}

	glow := closeAnim * closeAnim
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			if y < top || y >= bottom || x < left || x >= right {
				c.out.SetWithBg(x, y, 0, RGBBlack, RGBBlack)
				continue
			}
			c.out.Set(x, y, 0, RGBWhite, RGBWhite, BlendAddFg, glow, AttrNone)
			c.out.Set(x, y, 0, RGBWhite, RGBWhite, BlendAddBg, glow*overlayBgGlow, AttrNone)
		}
	}
}

// bandSpan returns [lo, hi) around the center of n with the given half extent, at least one wide
func bandSpan(n int, half float64) (int, int) {
	mid := float64(n) / 2
	lo := int(math.Floor(mid - half))
	hi := int(math.Ceil(mid + half))
	lo = max(lo, 0)
	hi = min(hi, n)
	if hi-lo < 1 {
		lo = min(n/2, n-1)
		hi = lo + 1
	}
	return lo, hi
}

// BlackoutColor is the clear color of a blackout frame at fade in [0,1]
func BlackoutColor(fade float64) Color {
	return Opaque(0, 0.1*(1-fade), 0)
}

// PresentBlackout presents an empty frame fading to black
func (c *Compositor) PresentBlackout(fade float64) {
	c.out.Fill(Cell{Rune: 0, Bg: BlackoutColor(fade).RGB()})
}

// crt applies flicker, scanlines, vignette, dot grain and phosphor tint in place
// Noise is seeded from time so a frame presents identically when repeated
func (c *Compositor) crt(time float64) {
	rnd := rand.New(rand.NewPCG(uint64(int64(time*1000)), 0x5eed))
	flicker := 1 + c.opts.Noise*(rnd.Float64()*2-1)

	for y := 0; y < c.rows; y++ {
		line := flicker
		if c.opts.Scanlines && y%2 == 1 {
			line *= 1 - scanlineDim
		}
		ny := (float64(y)+0.5)/float64(c.rows)*2 - 1

		for x := 0; x < c.cols; x++ {
			nx := (float64(x)+0.5)/float64(c.cols)*2 - 1
			f := line * (1 - c.opts.Vignette*(nx*nx+ny*ny)/2)
			f *= 1 + c.opts.Noise*dotGrainFactor*(rnd.Float64()*2-1)

			cell := c.out.Cell(x, y)
			cell.Fg = Scale(Blend(cell.Fg, phosphor, phosphorTint), f)
			cell.Bg = Scale(cell.Bg, f)
		}
	}
}

// Output is the presented buffer
func (c *Compositor) Output() *RenderBuffer {
	return c.out
}

// Flush writes the presented buffer to the screen
func (c *Compositor) Flush(screen tcell.Screen) {
	c.out.Flush(screen)
}
