package geodata

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/jsonc"
)

// ErrBadGeometry is returned for coordinates that do not decode to lon/lat positions
var ErrBadGeometry = errors.New("bad geometry")

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry *geometry `json:"geometry"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// position is [lon, lat, ...], extra members such as altitude are ignored
type position []float64

// ParseGeoJSON extracts Polygon rings, MultiPolygon rings and LineStrings as normalized polylines
// Comments and trailing commas are tolerated; other geometry types are skipped
func ParseGeoJSON(data []byte, b Bounds) ([]Polyline, error) {
	var fc featureCollection
	if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}

	var lines []Polyline
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		g := f.Geometry

		var err error
		switch g.Type {
		case "Polygon":
			var rings [][]position
			if err = decodeCoordinates(g.Coordinates, &rings); err == nil {
				for _, ring := range rings {
					var pl Polyline
					if pl, err = normalizeRing(ring, b); err != nil {
						break
					}
					lines = append(lines, pl)
				}
			}
		case "MultiPolygon":
			var polys [][][]position
			if err = decodeCoordinates(g.Coordinates, &polys); err == nil {
			outer:
				for _, rings := range polys {
					for _, ring := range rings {
						var pl Polyline
						if pl, err = normalizeRing(ring, b); err != nil {
							break outer
						}
						lines = append(lines, pl)
					}
				}
			}
		case "LineString":
			var ring []position
			if err = decodeCoordinates(g.Coordinates, &ring); err == nil {
				var pl Polyline
				if pl, err = normalizeRing(ring, b); err == nil {
					lines = append(lines, pl)
				}
			}
		}
		if err != nil {
			return nil, fmt.Errorf("feature %d (%s): %w", i, g.Type, err)
		}
	}
	return lines, nil
}

func decodeCoordinates(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}
	return nil
}

func normalizeRing(ring []position, b Bounds) (Polyline, error) {
	pl := make(Polyline, 0, len(ring))
	for _, p := range ring {
		if len(p) < 2 {
			return nil, ErrBadGeometry
		}
		pl = append(pl, b.Normalize(p[0], p[1]))
	}
	return pl, nil
}
