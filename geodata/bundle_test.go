package geodata

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

func TestBundleRoundTrip(t *testing.T) {
	src, err := LoadEmbedded()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteBundle(&buf, src); err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}

	got, err := ReadBundle(&buf)
	if err != nil {
		t.Fatalf("ReadBundle: %v", err)
	}

	for _, name := range src.Names() {
		a, b := src.MustMap(name), got.MustMap(name)
		if a.Bounds != b.Bounds {
			t.Errorf("%s bounds differ", name)
		}
		if len(a.Lines) != len(b.Lines) {
			t.Fatalf("%s line count %d != %d", name, len(a.Lines), len(b.Lines))
		}
		for i := range a.Lines {
			for j := range a.Lines[i] {
				if a.Lines[i][j] != b.Lines[i][j] {
					t.Fatalf("%s line %d point %d: %v != %v", name, i, j, a.Lines[i][j], b.Lines[i][j])
				}
			}
		}
	}
}

func TestBundleFileLoad(t *testing.T) {
	src, _ := LoadEmbedded()
	path := filepath.Join(t.TempDir(), "maps.geopack")
	if err := WriteBundleFile(path, src); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load(bundle): %v", err)
	}
	if len(s.Names()) != len(Catalog) {
		t.Errorf("bundle holds %d maps", len(s.Names()))
	}
}

func TestBundleVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	zw, _ := zstd.NewWriter(&buf)
	if err := cbor.NewEncoder(zw).Encode(bundle{Version: bundleVersion + 1}); err != nil {
		t.Fatal(err)
	}
	zw.Close()

	_, err := ReadBundle(&buf)
	if !errors.Is(err, ErrBundleVersion) {
		t.Errorf("ReadBundle = %v, want ErrBundleVersion", err)
	}
}

func TestBundleOddCoordinates(t *testing.T) {
	var buf bytes.Buffer
	zw, _ := zstd.NewWriter(&buf)
	b := bundle{Version: bundleVersion, Maps: []bundleMap{{Name: "x", Lines: [][]float64{{1, 2, 3}}}}}
	if err := cbor.NewEncoder(zw).Encode(b); err != nil {
		t.Fatal(err)
	}
	zw.Close()

	if _, err := ReadBundle(&buf); !errors.Is(err, ErrBadGeometry) {
		t.Errorf("ReadBundle = %v, want ErrBadGeometry", err)
	}
}

func TestBundleGarbage(t *testing.T) {
	if _, err := ReadBundle(bytes.NewReader([]byte("not a bundle"))); err == nil {
		t.Error("garbage must fail")
	}
}
