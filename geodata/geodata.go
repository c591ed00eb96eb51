// Package geodata loads the vector outlines drawn by the locate scene
// Maps are read once at startup and never mutated afterwards
package geodata

import (
	"github.com/lixenwraith/retro-terminal/vmath"
)

// Polyline is an open or closed sequence of normalized points
type Polyline []vmath.Vec2

// Map is a named set of polylines normalized by its bounds
type Map struct {
	Name   string
	Bounds Bounds
	Lines  []Polyline
}

// Points counts vertices across all lines
func (m *Map) Points() int {
	n := 0
	for _, l := range m.Lines {
		n += len(l)
	}
	return n
}

// Map names
const (
	MapWorld          = "world"
	MapGermany        = "germany"
	MapSaarland       = "saarland"
	MapHTW            = "htwsaar"
	MapSimpleGermany  = "simpleGermany"
	MapSimpleSaarland = "simpleSaarland"
	MapSaarbruecken   = "saarbruecken"
)

// FileSuffix is appended to a map name to form its GeoJSON file name
const FileSuffix = ".geo.json"

// Entry pairs a map name with the box its file is normalized by
type Entry struct {
	Name   string
	Bounds Bounds
}

// Catalog is the full map set required by the presentation
var Catalog = []Entry{
	{MapWorld, BoundsGermany},
	{MapGermany, BoundsGermany},
	{MapSaarland, BoundsSaarland},
	{MapHTW, BoundsHTW},
	{MapSimpleGermany, BoundsGermany},
	{MapSimpleSaarland, BoundsGermany},
	{MapSaarbruecken, BoundsSaarland},
}

// CatalogNames lists Catalog map names in order
func CatalogNames() []string {
	names := make([]string, len(Catalog))
	for i, e := range Catalog {
		names[i] = e.Name
	}
	return names
}
