// Package scene holds the three staged animations of the presentation
// Each scene is polled once per frame on the frame goroutine and never blocks
package scene

import (
	"github.com/lixenwraith/retro-terminal/audio"
	"github.com/lixenwraith/retro-terminal/engine"
	"github.com/lixenwraith/retro-terminal/render"
)

// Scene is the contract the director drives
type Scene interface {
	// Update advances the scene's own state machine by one frame
	Update(ft engine.FrameTime)
	// Render draws the current state; it must not change scene state
	Render(c render.Canvas, l Layout, time float64)
	Finished() bool
	// Reset returns the scene to its initial stage in place
	Reset()
}

// Layout carries the anchor row and line spacing chosen by the director
type Layout struct {
	Y           float64
	LineSpacing float64
}

// TypeSink receives one event per revealed character
type TypeSink interface {
	Typed()
}

// CuePlayer plays one-shot sound cues
type CuePlayer interface {
	PlayCue(c audio.Cue)
}

type nopSink struct{}

func (nopSink) Typed() {}

type nopCues struct{}

func (nopCues) PlayCue(audio.Cue) {}

// timeEpsilon absorbs float accumulation when a timer is compared against an interval
const timeEpsilon = 1e-9

// reached reports whether elapsed has met interval
func reached(elapsed, interval float64) bool {
	return elapsed+timeEpsilon >= interval
}

// cursor returns the blinking underscore for the given rate in Hz
func cursor(time, hz float64) string {
	if int(time*hz)%2 == 0 {
		return "_"
	}
	return ""
}

// centered returns the x that centers s on the canvas
func centered(c render.Canvas, s string, scale float64) float64 {
	return (c.Width() - c.TextWidth(s, scale)) / 2
}
