package geodata

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"

	"github.com/lixenwraith/retro-terminal/asset"
)

// ErrUnknownMap is returned for a map name the store does not hold
var ErrUnknownMap = errors.New("unknown map")

// Store is an immutable set of maps keyed by name
type Store struct {
	maps map[string]*Map
}

// NewStore builds a store, later maps replace earlier ones with the same name
func NewStore(maps ...*Map) *Store {
	s := &Store{maps: make(map[string]*Map, len(maps))}
	for _, m := range maps {
		s.maps[m.Name] = m
	}
	return s
}

// Map returns the named map
func (s *Store) Map(name string) (*Map, error) {
	m, ok := s.maps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMap, name)
	}
	return m, nil
}

// MustMap returns the named map and panics if absent; use after Require
func (s *Store) MustMap(name string) *Map {
	m, err := s.Map(name)
	if err != nil {
		panic(err)
	}
	return m
}

// Require checks that every named map is present
func (s *Store) Require(names ...string) error {
	var missing []error
	for _, n := range names {
		if _, err := s.Map(n); err != nil {
			missing = append(missing, err)
		}
	}
	return errors.Join(missing...)
}

// Names returns held map names sorted
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.maps))
	for n := range s.maps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadFS parses every Catalog map from dir inside fsys
func LoadFS(fsys fs.FS, dir string) (*Store, error) {
	maps := make([]*Map, 0, len(Catalog))
	for _, e := range Catalog {
		file := path.Join(dir, e.Name+FileSuffix)
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("load map %s: %w", e.Name, err)
		}
		lines, err := ParseGeoJSON(data, e.Bounds)
		if err != nil {
			return nil, fmt.Errorf("parse map %s: %w", e.Name, err)
		}
		maps = append(maps, &Map{Name: e.Name, Bounds: e.Bounds, Lines: lines})
	}
	return NewStore(maps...), nil
}

// LoadDir parses the Catalog from a directory of GeoJSON files
func LoadDir(dir string) (*Store, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadEmbedded parses the bundled coarse outlines
func LoadEmbedded() (*Store, error) {
	return LoadFS(asset.Maps, "maps")
}

// Load reads a GeoJSON directory or a geopack bundle file
// An empty path selects the bundled outlines
func Load(p string) (*Store, error) {
	if p == "" {
		log.Printf("[geodata] using bundled outlines")
		return LoadEmbedded()
	}

	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("geodata %s: %w", p, err)
	}

	var s *Store
	if info.IsDir() {
		s, err = LoadDir(p)
	} else {
		s, err = ReadBundleFile(p)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Require(CatalogNames()...); err != nil {
		return nil, fmt.Errorf("geodata %s: %w", p, err)
	}
	log.Printf("[geodata] loaded %d maps from %s", len(s.maps), p)
	return s, nil
}
