package engine

import (
	"time"
)

// FrameTime is the per-frame time snapshot handed to the director and scenes
type FrameTime struct {
	Now   float64 // Seconds since presentation start, monotonic
	Delta float64 // Seconds since the previous frame, 0 on the first frame
	Frame uint64
}

// FrameClock derives frame times from a pausable clock
// Delta never goes negative and is capped so a stalled terminal cannot skip whole states
type FrameClock struct {
	clock   *PausableClock
	last    float64
	frame   uint64
	started bool
}

// DefaultMaxDelta caps a single frame step
const DefaultMaxDelta = 0.25

// NewFrameClock creates a frame clock over the given time source
func NewFrameClock(source TimeProvider) *FrameClock {
	return &FrameClock{clock: NewPausableClock(source)}
}

// Clock exposes the underlying pausable clock
func (fc *FrameClock) Clock() *PausableClock {
	return fc.clock
}

// Tick samples the clock and advances the frame counter
func (fc *FrameClock) Tick() FrameTime {
	now := fc.clock.Elapsed().Seconds()

	var delta float64
	if fc.started {
		delta = now - fc.last
		delta = max(0, min(delta, DefaultMaxDelta))
	}
	fc.started = true
	fc.last = now
	fc.frame++

	return FrameTime{Now: now, Delta: delta, Frame: fc.frame}
}

// FrameInterval converts a frame rate to a ticker interval, defaulting to 60 FPS
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
