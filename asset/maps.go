package asset

import "embed"

// Maps holds the bundled GeoJSON outlines under maps/
//
//go:embed maps/*.geo.json
var Maps embed.FS
