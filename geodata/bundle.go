package geodata

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/lixenwraith/retro-terminal/vmath"
)

// bundleVersion is bumped on any incompatible layout change
const bundleVersion = 1

// ErrBundleVersion is returned for bundles written by an incompatible geopack
var ErrBundleVersion = errors.New("unsupported bundle version")

type bundle struct {
	Version int         `cbor:"1,keyasint"`
	Maps    []bundleMap `cbor:"2,keyasint"`
}

type bundleMap struct {
	Name   string      `cbor:"1,keyasint"`
	Bounds [4]float64  `cbor:"2,keyasint"`
	Lines  [][]float64 `cbor:"3,keyasint"` // flattened x,y pairs
}

// WriteBundle encodes the store as zstd-compressed CBOR
func WriteBundle(w io.Writer, s *Store) error {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return fmt.Errorf("cbor encoder: %w", err)
	}

	b := bundle{Version: bundleVersion}
	for _, name := range s.Names() {
		m := s.maps[name]
		bm := bundleMap{
			Name:   m.Name,
			Bounds: [4]float64{m.Bounds.LonMin, m.Bounds.LonMax, m.Bounds.LatMin, m.Bounds.LatMax},
			Lines:  make([][]float64, len(m.Lines)),
		}
		for i, l := range m.Lines {
			flat := make([]float64, 0, 2*len(l))
			for _, p := range l {
				flat = append(flat, p.X, p.Y)
			}
			bm.Lines[i] = flat
		}
		b.Maps = append(b.Maps, bm)
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := em.NewEncoder(zw).Encode(b); err != nil {
		zw.Close()
		return fmt.Errorf("encode bundle: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush bundle: %w", err)
	}
	return nil
}

// ReadBundle decodes a bundle written by WriteBundle
func ReadBundle(r io.Reader) (*Store, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer zr.Close()

	var b bundle
	if err := cbor.NewDecoder(zr).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if b.Version != bundleVersion {
		return nil, fmt.Errorf("%w: %d", ErrBundleVersion, b.Version)
	}

	maps := make([]*Map, 0, len(b.Maps))
	for _, bm := range b.Maps {
		m := &Map{
			Name:   bm.Name,
			Bounds: Bounds{LonMin: bm.Bounds[0], LonMax: bm.Bounds[1], LatMin: bm.Bounds[2], LatMax: bm.Bounds[3]},
			Lines:  make([]Polyline, len(bm.Lines)),
		}
		for i, flat := range bm.Lines {
			if len(flat)%2 != 0 {
				return nil, fmt.Errorf("map %s line %d: %w", bm.Name, i, ErrBadGeometry)
			}
			pl := make(Polyline, len(flat)/2)
			for j := range pl {
				pl[j] = vmath.Vec2{X: flat[2*j], Y: flat[2*j+1]}
			}
			m.Lines[i] = pl
		}
		maps = append(maps, m)
	}
	return NewStore(maps...), nil
}

// WriteBundleFile writes a bundle to path
func WriteBundleFile(path string, s *Store) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteBundle(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadBundleFile reads a bundle from path
func ReadBundleFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBundle(f)
}
