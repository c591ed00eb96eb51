package vmath

import (
	"math"
)

// EaseFunc maps normalized time t in [0,1] to eased progress
type EaseFunc func(t float64) float64

// EaseLinear returns t unchanged
func EaseLinear(t float64) float64 { return t }

// EaseInQuad accelerates from zero velocity
func EaseInQuad(t float64) float64 { return t * t }

// EaseOutQuad decelerates to zero velocity
func EaseOutQuad(t float64) float64 { return t * (2 - t) }

// EaseInOutQuad accelerates until halfway, then decelerates
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

var easings = map[string]EaseFunc{
	"linear":      EaseLinear,
	"in_quad":     EaseInQuad,
	"out_quad":    EaseOutQuad,
	"in_out_quad": EaseInOutQuad,
}

// Easing resolves an easing curve by its config name
func Easing(name string) (EaseFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates linearly between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Approach moves current toward target by rate*dt of the remaining distance
// Frame-rate dependent exponential smoothing; overshoots when rate*dt > 1
func Approach(current, target, rate, dt float64) float64 {
	return Lerp(current, target, rate*dt)
}

// Near reports whether a and b differ by strictly less than eps
func Near(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// Wrap returns the non-negative remainder of x/period
func Wrap(x, period float64) float64 {
	r := math.Mod(x, period)
	if r < 0 {
		r += period
	}
	return r
}
