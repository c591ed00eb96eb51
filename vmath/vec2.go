package vmath

import (
	"math"
)

// Vec2 is a float64 2D point used for map polylines and screen projection
type Vec2 struct {
	X, Y float64
}

// V2Polar returns the point at angle (radians) and radius around c
func V2Polar(c Vec2, angle, radius float64) Vec2 {
	return Vec2{c.X + math.Cos(angle)*radius, c.Y + math.Sin(angle)*radius}
}

// Centroid returns the arithmetic mean of the points, zero for empty input
func Centroid(pts []Vec2) Vec2 {
	if len(pts) == 0 {
		return Vec2{}
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return Vec2{sx / n, sy / n}
}

// ScaleAbout scales p away from c by s
func ScaleAbout(p, c Vec2, s float64) Vec2 {
	return Vec2{c.X + (p.X-c.X)*s, c.Y + (p.Y-c.Y)*s}
}
