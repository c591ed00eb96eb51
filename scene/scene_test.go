package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/lixenwraith/retro-terminal/audio"
	"github.com/lixenwraith/retro-terminal/engine"
	"github.com/lixenwraith/retro-terminal/render"
	"github.com/lixenwraith/retro-terminal/vmath"
)

// textCall is one recorded Canvas.Text call
type textCall struct {
	s     string
	x, y  float64
	scale float64
	color render.Color
}

// recordCanvas is a render.Canvas that records draw calls
// Text advance is 10 units per byte at scale 1
type recordCanvas struct {
	w, h      float64
	clears    []render.Color
	texts     []textCall
	lines     int
	polylines int
	circles   int
	points    int
}

func newRecordCanvas() *recordCanvas {
	return &recordCanvas{w: 1920, h: 1080}
}

func (c *recordCanvas) Width() float64      { return c.w }
func (c *recordCanvas) Height() float64     { return c.h }
func (c *recordCanvas) LineHeight() float64 { return 40 }
func (c *recordCanvas) Clear(col render.Color) {
	c.clears = append(c.clears, col)
}
func (c *recordCanvas) Text(s string, x, y, scale float64, col render.Color) {
	c.texts = append(c.texts, textCall{s: s, x: x, y: y, scale: scale, color: col})
}
func (c *recordCanvas) TextWidth(s string, scale float64) float64 {
	return float64(len(s)) * 10 * scale
}
func (c *recordCanvas) Line(x1, y1, x2, y2, width float64, col render.Color) { c.lines++ }
func (c *recordCanvas) Polyline(pts []vmath.Vec2, width float64, col render.Color) {
	c.polylines++
}
func (c *recordCanvas) Circle(x, y, r, width float64, col render.Color) { c.circles++ }
func (c *recordCanvas) Point(x, y, r float64, col render.Color)         { c.points++ }

// find returns the first text call starting with prefix
func (c *recordCanvas) find(prefix string) (textCall, bool) {
	for _, tc := range c.texts {
		if strings.HasPrefix(tc.s, prefix) {
			return tc, true
		}
	}
	return textCall{}, false
}

type countSink struct{ n int }

func (s *countSink) Typed() { s.n++ }

type recordCues struct{ cues []audio.Cue }

func (r *recordCues) PlayCue(c audio.Cue) { r.cues = append(r.cues, c) }

func (r *recordCues) count(c audio.Cue) int {
	n := 0
	for _, x := range r.cues {
		if x == c {
			n++
		}
	}
	return n
}

// frames yields frame times from start in fixed steps without accumulating float error
type frames struct {
	start, dt float64
	i         int
}

func (f *frames) next() engine.FrameTime {
	ft := engine.FrameTime{Now: f.start + float64(f.i)*f.dt, Delta: f.dt, Frame: uint64(f.i + 1)}
	if f.i == 0 {
		ft.Delta = 0
	}
	f.i++
	return ft
}

func TestReached(t *testing.T) {
	tests := []struct {
		elapsed, interval float64
		want              bool
	}{
		{0.17, 0.18, false},
		{0.18, 0.18, true},
		{0.02 * 9, 0.18, true},
		{0.1 + 0.2, 0.3, true},
		{0.2999, 0.3, false},
	}
	for _, tt := range tests {
		if got := reached(tt.elapsed, tt.interval); got != tt.want {
			t.Errorf("reached(%v, %v) = %v, want %v", tt.elapsed, tt.interval, got, tt.want)
		}
	}
}

func TestCursorBlink(t *testing.T) {
	if cursor(0, 8) != "_" {
		t.Error("cursor should show at time 0")
	}
	if cursor(0.125, 8) != "" {
		t.Error("cursor should hide in the second 8Hz slot")
	}
	if cursor(0.25, 8) != "_" {
		t.Error("cursor should show in the third 8Hz slot")
	}
	if cursor(0.6, 2) != "" {
		t.Error("2Hz cursor should hide at 0.6s")
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
