package geodata

import "github.com/lixenwraith/retro-terminal/vmath"

// Bounds is a lon/lat box mapped onto [-1,1]²
type Bounds struct {
	LonMin, LonMax float64
	LatMin, LatMax float64
}

// Normalization boxes for the map set
var (
	BoundsGermany  = Bounds{LonMin: 5.0, LonMax: 16.0, LatMin: 47.0, LatMax: 55.0}
	BoundsSaarland = Bounds{LonMin: 6.35, LonMax: 7.45, LatMin: 49.11, LatMax: 49.65}
	BoundsHTW      = Bounds{LonMin: 6.970, LonMax: 6.978, LatMin: 49.234, LatMax: 49.242}
)

// Valid reports a non-degenerate box
func (b Bounds) Valid() bool {
	return b.LonMax > b.LonMin && b.LatMax > b.LatMin
}

// Normalize maps lon/lat to box coordinates, y grows north
// Points outside the box land outside [-1,1]
func (b Bounds) Normalize(lon, lat float64) vmath.Vec2 {
	return vmath.Vec2{
		X: (lon-b.LonMin)/(b.LonMax-b.LonMin)*2 - 1,
		Y: (lat-b.LatMin)/(b.LatMax-b.LatMin)*2 - 1,
	}
}
